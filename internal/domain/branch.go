package domain

import "time"

// Branch is a shop location. Orders embed a snapshot of the branch they were
// created at so the record stays readable if the branch is later edited.
type Branch struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BranchSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func (b Branch) Snapshot() BranchSnapshot {
	return BranchSnapshot{ID: b.ID, Name: b.Name, Address: b.Address, Phone: b.Phone}
}
