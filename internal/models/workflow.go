package models

// WorkflowStep is one action in an automation workflow. Steps referencing a
// template do so by ID.
type WorkflowStep struct {
	Kind       string `json:"kind"`
	TemplateID string `json:"templateId"`
}

// Workflow is an automation rule: when the trigger fires, the steps run in
// order. Relationally the steps are stored as a JSONB column.
type Workflow struct {
	Meta
	UserID  string         `json:"userId"`
	Name    string         `json:"name"`
	Trigger string         `json:"trigger"`
	Enabled bool           `json:"enabled"`
	Steps   []WorkflowStep `json:"steps"`
}

func (w *Workflow) OwnerID() string { return w.UserID }
