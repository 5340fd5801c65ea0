package workflow

import (
	"context"

	"rosterservice/internal/domain/notify"
	"rosterservice/internal/domain/roster"
)

// Recruit is the recruit pipeline: collect team and member, then add the
// member to the team's roster.
func Recruit(svc roster.Service) Definition {
	return Definition{
		Name: "recruit",
		Form: FormRequest{
			Title:       "Recruit a team member",
			Description: "Recruit a team member",
			SubmitLabel: "Recruit",
			Fields: []FormField{
				{Name: "team", Title: "Team", Type: "string", Required: true},
				{Name: "member", Title: "Member", Type: "user_id", Required: true},
			},
		},
		Steps: []Step{
			{
				Name:   "recruit",
				Inputs: []string{"team", "member"},
				Run: func(ctx context.Context, in Values) (Values, error) {
					return nil, svc.Recruit(ctx, in["team"], in["member"])
				},
			},
		},
	}
}

// Boot is the inverse of Recruit: collect team and member, then drop the
// member from the roster.
func Boot(svc roster.Service) Definition {
	return Definition{
		Name: "boot",
		Form: FormRequest{
			Title:       "Boot a team member",
			Description: "Remove a member from a team",
			SubmitLabel: "Boot",
			Fields: []FormField{
				{Name: "team", Title: "Team", Type: "string", Required: true},
				{Name: "member", Title: "Member", Type: "user_id", Required: true},
			},
		},
		Steps: []Step{
			{
				Name:   "boot",
				Inputs: []string{"team", "member"},
				Run: func(ctx context.Context, in Values) (Values, error) {
					return nil, svc.Dismiss(ctx, in["team"], in["member"])
				},
			},
		},
	}
}

// Roster collects team and channel, reads the roster and posts it to the
// channel through the notification sink.
func Roster(svc roster.Service, sink notify.Sink) Definition {
	return Definition{
		Name: "roster",
		Form: FormRequest{
			Title:       "View a team roster",
			Description: "Post a team roster to a channel",
			SubmitLabel: "Post",
			Fields: []FormField{
				{Name: "team", Title: "Team", Type: "string", Required: true},
				{Name: "channel", Title: "Channel", Type: "channel_id", Required: true},
			},
		},
		Steps: []Step{
			{
				Name:   "post_roster",
				Inputs: []string{"team", "channel"},
				Run: func(ctx context.Context, in Values) (Values, error) {
					members, err := svc.ListMembers(ctx, in["team"])
					if err != nil {
						return nil, err
					}
					return nil, sink.PostMessage(ctx, in["channel"], notify.NewRosterMessage(members))
				},
			},
		},
	}
}
