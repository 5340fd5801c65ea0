package dto

type StartWorkflowRequest struct {
	Channel string `json:"channel,omitempty"`
}

type FormField struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type FormSpec struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	SubmitLabel string      `json:"submit_label,omitempty"`
	Fields      []FormField `json:"fields"`
}

type Workflow struct {
	WorkflowID string    `json:"workflow_id"`
	Workflow   string    `json:"workflow"`
	State      string    `json:"state"`
	Error      string    `json:"error,omitempty"`
	Form       *FormSpec `json:"form,omitempty"`
}

type SubmitFormRequest struct {
	Fields map[string]string `json:"fields"`
}
