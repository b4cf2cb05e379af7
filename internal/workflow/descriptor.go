package workflow

// Status is the closed set of states a verifiable entity can be in, as
// observed by this service. Terminology varies per entity type in the UI
// (see StatusLabels) but the machine itself is shared.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusPending  Status = "PENDING_VERIFICATION"
	StatusVerified Status = "VERIFIED"
	StatusRejected Status = "REJECTED"
)

type Action string

const (
	ActionVerify Action = "VERIFY"
	ActionReject Action = "REJECT"
)

type CreationType string

const (
	CreationSingle CreationType = "SINGLE"
	CreationBulk   CreationType = "BULK"
)

// Descriptor parameterizes the generic verification engine for one entity
// type: one descriptor instead of one copy-pasted implementation per type.
type Descriptor struct {
	Slug string
	Name string

	// VerifierRoles is the verification chain: role id required at level 1,
	// level 2, and so on. Level 0 is always the creator.
	VerifierRoles []uint64

	// BulkCapable entity types share a batch id across rows created together
	// and transition atomically as a group.
	BulkCapable bool

	// RecognizeConflict enables the ALREADY_APPROVED conflict class on
	// verify. Only Client PO carries this; the other entity types report a
	// generic conflict for the same situation.
	RecognizeConflict bool

	// StatusLabels overrides display names for canonical states, e.g. the
	// BOQ revision's "Revision Pending".
	StatusLabels map[Status]string
}

func (d Descriptor) Levels() int {
	return len(d.VerifierRoles)
}

// RoleForLevel returns the verifier role required at the given level
// (1-based). Level 0 has no verifier role.
func (d Descriptor) RoleForLevel(level int) (uint64, bool) {
	if level < 1 || level > len(d.VerifierRoles) {
		return 0, false
	}
	return d.VerifierRoles[level-1], true
}

func (d Descriptor) Label(s Status) string {
	if d.StatusLabels != nil {
		if label, ok := d.StatusLabels[s]; ok {
			return label
		}
	}
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPending:
		return "Pending Verification"
	case StatusVerified:
		return "Verified"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}
