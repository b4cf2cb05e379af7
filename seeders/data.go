package seeders

type roleSeed struct {
	ID          uint64
	Name        string
	Description string
}

// Role ids are fixed: the workflow descriptors reference them by number.
var rolesData = []roleSeed{
	{1, "Admin", "Full administrative access"},
	{2, "Accounts Officer", "Prepares accounting records"},
	{3, "Accounts Manager", "Verifies clients, sub-clients, groups and budgets"},
	{4, "Site Officer", "Site level data entry"},
	{5, "Site In-Charge", "Site level supervision"},
	{6, "Procurement Officer", "Prepares procurement records"},
	{7, "Procurement Manager", "Verifies base codes, units, specifications and client POs"},
	{8, "Project Manager", "Final verifier for budgets and BOQ revisions"},
	{9, "Quantity Surveyor", "First verifier for BOQ revisions"},
	{10, "Tender Manager", "Verifies tender final statuses"},
}

type costCentreSeed struct {
	CCNo  string
	Name  string
	State string
}

var costCentresData = []costCentreSeed{
	{"CC-001", "Mumbai Metro Package 4", "Maharashtra"},
	{"CC-002", "Pune Ring Road", "Maharashtra"},
	{"CC-003", "Bengaluru Airport T2", "Karnataka"},
	{"CC-004", "Chennai Port Expansion", "Tamil Nadu"},
	{"CC-005", "Hyderabad ORR Widening", "Telangana"},
}
