package workflow

import "fmt"

// Built-in role ids, seeded by seeders.SeedRoles. Verification chains below
// reference these.
const (
	RoleAdmin              uint64 = 1
	RoleAccountsOfficer    uint64 = 2
	RoleAccountsManager    uint64 = 3
	RoleSiteOfficer        uint64 = 4
	RoleSiteInCharge       uint64 = 5
	RoleProcurementOfficer uint64 = 6
	RoleProcurementManager uint64 = 7
	RoleProjectManager     uint64 = 8
	RoleQuantitySurveyor   uint64 = 9
	RoleTenderManager      uint64 = 10
)

type Registry struct {
	bySlug map[string]Descriptor
	order  []string
}

func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{bySlug: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, dup := r.bySlug[d.Slug]; dup {
			panic(fmt.Sprintf("duplicate workflow descriptor slug %q", d.Slug))
		}
		r.bySlug[d.Slug] = d
		r.order = append(r.order, d.Slug)
	}
	return r
}

func (r *Registry) Get(slug string) (Descriptor, bool) {
	d, ok := r.bySlug[slug]
	return d, ok
}

func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.bySlug[slug])
	}
	return out
}

// DefaultRegistry wires the eleven back-office entity types into the shared
// engine.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Descriptor{
			Slug: "clients", Name: "Client",
			VerifierRoles: []uint64{RoleAccountsManager},
		},
		Descriptor{
			Slug: "subclients", Name: "Sub Client",
			VerifierRoles: []uint64{RoleAccountsManager},
		},
		Descriptor{
			Slug: "groups", Name: "Accounting Group",
			VerifierRoles: []uint64{RoleAccountsManager},
		},
		Descriptor{
			Slug: "ccbudgets", Name: "Cost Centre Budget",
			VerifierRoles: []uint64{RoleAccountsManager, RoleProjectManager},
		},
		Descriptor{
			Slug: "dcabudgets", Name: "DCA Budget",
			VerifierRoles: []uint64{RoleAccountsManager, RoleProjectManager},
		},
		Descriptor{
			Slug: "basecodes", Name: "Inventory Base Code",
			VerifierRoles: []uint64{RoleProcurementManager},
			BulkCapable:   true,
		},
		Descriptor{
			Slug: "specifications", Name: "Specification",
			VerifierRoles: []uint64{RoleProcurementManager},
		},
		Descriptor{
			Slug: "units", Name: "Unit of Measure",
			VerifierRoles: []uint64{RoleProcurementManager},
			BulkCapable:   true,
		},
		Descriptor{
			Slug: "clientpos", Name: "Client Purchase Order",
			VerifierRoles:     []uint64{RoleProcurementManager},
			RecognizeConflict: true,
		},
		Descriptor{
			Slug: "boqrevisions", Name: "BOQ Revision",
			VerifierRoles: []uint64{RoleQuantitySurveyor, RoleProjectManager},
			StatusLabels: map[Status]string{
				StatusPending: "Revision Pending",
			},
		},
		Descriptor{
			Slug: "tenderstatuses", Name: "Tender Final Status",
			VerifierRoles: []uint64{RoleTenderManager},
		},
	)
}
