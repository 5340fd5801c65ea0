package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rosterservice/internal/app/dto"
	"rosterservice/internal/domain/workflow"
)

func (h *Handler) TriggerRecruit(c *gin.Context) { h.startWorkflow(c, "recruit") }
func (h *Handler) TriggerBoot(c *gin.Context)    { h.startWorkflow(c, "boot") }
func (h *Handler) TriggerRoster(c *gin.Context)  { h.startWorkflow(c, "roster") }

func (h *Handler) startWorkflow(c *gin.Context, name string) {
	var body dto.StartWorkflowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.badRequest(c, "invalid JSON")
			return
		}
	}

	initial := workflow.Values{}
	if body.Channel != "" {
		initial["channel"] = body.Channel
	}

	v, err := h.Engine.Start(name, initial)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, workflowResponse(v))
}

func (h *Handler) FormSubmit(c *gin.Context) {
	var body dto.SubmitFormRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if err := h.Engine.Submit(c.Param("id"), workflow.Values(body.Fields)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
}

func (h *Handler) WorkflowAbandon(c *gin.Context) {
	if err := h.Engine.Abandon(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "abandoned"})
}

func (h *Handler) WorkflowGet(c *gin.Context) {
	v, err := h.Engine.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, workflowResponse(v))
}

func workflowResponse(v workflow.InstanceView) dto.Workflow {
	resp := dto.Workflow{
		WorkflowID: v.ID,
		Workflow:   v.Workflow,
		State:      string(v.State),
		Error:      v.Error,
	}

	if len(v.Form.Fields) > 0 {
		form := dto.FormSpec{
			Title:       v.Form.Title,
			Description: v.Form.Description,
			SubmitLabel: v.Form.SubmitLabel,
			Fields:      make([]dto.FormField, 0, len(v.Form.Fields)),
		}
		for _, f := range v.Form.Fields {
			form.Fields = append(form.Fields, dto.FormField{
				Name:     f.Name,
				Title:    f.Title,
				Type:     f.Type,
				Required: f.Required,
			})
		}
		resp.Form = &form
	}

	return resp
}
