// Package scheduler provides background job enqueueing and processing on top
// of asynq. The API process enqueues; the worker process consumes.
package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskMemberInviteEmail delivers the invitation email for a committed invite.
const TaskMemberInviteEmail = "membership.invite_email"

type MemberInviteEmailPayload struct {
	Email            string `json:"email"`
	OrganizationID   int64  `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
}

func NewMemberInviteEmailTask(payload MemberInviteEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal invite email payload: %w", err)
	}
	return asynq.NewTask(TaskMemberInviteEmail, data), nil
}

func ParseMemberInviteEmailPayload(task *asynq.Task) (MemberInviteEmailPayload, error) {
	var payload MemberInviteEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MemberInviteEmailPayload{}, fmt.Errorf("unmarshal invite email payload: %w", err)
	}
	return payload, nil
}
