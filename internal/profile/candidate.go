package profile

type Candidates struct {
	Items []*Candidate
}

// Candidate is a registered user. Only Qualification and Experience take part in scoring.
type Candidate struct {
	ID            string `json:"id,omitempty"`
	Adhaar        string `json:"adhaar,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Qualification string `json:"qualification" validate:"required"`
	Experience    int    `json:"experience" validate:"min=0"`
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// FindByID matches either the record id or the adhaar number.
func (c *Candidates) FindByID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id || (candidate.Adhaar != "" && candidate.Adhaar == id) {
			return candidate
		}
	}
	return nil
}

// Names returns "id name" labels in list order.
func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		names = append(names, candidate.ID+" "+candidate.Name)
	}
	return names
}
