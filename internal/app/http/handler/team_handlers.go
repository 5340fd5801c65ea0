package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rosterservice/internal/app/dto"
)

func (h *Handler) TeamAdd(c *gin.Context) {
	var body dto.Team
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.TeamID == "" {
		h.badRequest(c, "team_id is required")
		return
	}

	t, err := h.RosterSvc.CreateTeam(c.Request.Context(), body.TeamID, body.Members)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Team{
		TeamID:  t.ID,
		Members: t.Members,
	})
}

func (h *Handler) TeamGet(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		h.badRequest(c, "team_id is required")
		return
	}

	members, err := h.RosterSvc.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if members == nil {
		members = []string{}
	}

	c.JSON(http.StatusOK, dto.Team{
		TeamID:  teamID,
		Members: members,
	})
}
