package service

import (
	"context"
	"encoding/json"
	"fmt"

	"fopassistant/internal/model"
	"fopassistant/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	EntityID  string `json:"entity_id"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, userID string, offset, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditLogs lists one user's entries, newest first.
func (s *auditService) GetAuditLogs(ctx context.Context, userID string, offset, limit int) ([]AuditLogResponse, int64, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return nil, 0, err
	}

	logs, total, err := s.auditRepo.ListByUser(ctx, uid, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, AuditLogResponse{
			ID:        l.ID.String(),
			UserID:    l.UserID.String(),
			Action:    l.Action,
			EntityID:  l.EntityID,
			Details:   l.Details,
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}

// writeAudit records action on entityID with payload encoded as JSON details.
// It runs on ctx so the entry commits or rolls back with the change it describes.
func writeAudit(ctx context.Context, auditRepo repository.AuditRepository, userID uuid.UUID, action, entityID string, payload any) error {
	details := []byte("{}")
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
		details = encoded
	}
	audit := &model.AuditLog{
		ID:       uuid.New(),
		UserID:   userID,
		Action:   action,
		EntityID: entityID,
		Details:  string(details),
	}
	if err := auditRepo.Log(ctx, audit); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
