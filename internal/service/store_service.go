package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/storeclient"
)

var (
	ErrStoreUnknownType   = fmt.Errorf("%w: unknown collection type", pkgerrors.ErrValidation)
	ErrStoreUnknownAction = fmt.Errorf("%w: unknown action", pkgerrors.ErrValidation)
	ErrStoreBadPayload    = fmt.Errorf("%w: malformed payload", pkgerrors.ErrValidation)
	ErrStoreImmutable     = fmt.Errorf("%w: records of this type are append-only", pkgerrors.ErrValidation)
)

// StoreService serves the single-endpoint collection protocol on top of the
// entity services.
type StoreService interface {
	// Snapshot returns every collection keyed by its legacy name.
	Snapshot(ctx context.Context) (map[string]interface{}, error)
	// Apply runs one {action, type, payload} mutation and returns the
	// resulting entity, or dto.StoreDeleted for deletes.
	Apply(ctx context.Context, req *dto.StoreRequest) (interface{}, error)
}

// storeKind one collection of the closed kind set.
type storeKind interface {
	list(ctx context.Context) (interface{}, error)
	add(ctx context.Context, payload json.RawMessage) (interface{}, error)
	update(ctx context.Context, payload json.RawMessage) (interface{}, error)
	remove(ctx context.Context, id uint) error
}

type kindAdapter[T any, P entity[T]] struct {
	svc       EntityService[T]
	validate  *modelValidator
	immutable bool
}

func (k *kindAdapter[T, P]) list(ctx context.Context) (interface{}, error) {
	return k.svc.List(ctx)
}

func (k *kindAdapter[T, P]) add(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreBadPayload, err)
	}
	if err := k.validate.check(&item); err != nil {
		return nil, err
	}
	return k.svc.Create(ctx, &item)
}

// update overlays the payload on the stored row; fields absent from the
// payload keep their stored values.
func (k *kindAdapter[T, P]) update(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	if k.immutable {
		return nil, ErrStoreImmutable
	}
	id, err := payloadID(payload)
	if err != nil {
		return nil, err
	}
	return k.svc.Update(ctx, id, func(cur *T) error {
		if err := json.Unmarshal(payload, cur); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreBadPayload, err)
		}
		return k.validate.check(cur)
	})
}

func (k *kindAdapter[T, P]) remove(ctx context.Context, id uint) error {
	return k.svc.Delete(ctx, id)
}

type storeService struct {
	kinds  map[string]storeKind
	order  []string
	logger *zap.Logger
}

// NewStoreService creates a StoreService over the entity services.
func NewStoreService(
	students EntityService[model.Student],
	supervisors EntityService[model.Supervisor],
	classes EntityService[model.Class],
	activities EntityService[model.Activity],
	incidents EntityService[model.Incident],
	health EntityService[model.HealthRecord],
	history EntityService[model.AttendanceRecord],
	admins EntityService[model.Admin],
	logger *zap.Logger,
) StoreService {
	v := newModelValidator()
	return &storeService{
		kinds: map[string]storeKind{
			storeclient.Santri:         &kindAdapter[model.Student, *model.Student]{svc: students, validate: v},
			storeclient.Pembina:        &kindAdapter[model.Supervisor, *model.Supervisor]{svc: supervisors, validate: v},
			storeclient.Kelas:          &kindAdapter[model.Class, *model.Class]{svc: classes, validate: v},
			storeclient.Kegiatan:       &kindAdapter[model.Activity, *model.Activity]{svc: activities, validate: v},
			storeclient.Pelanggaran:    &kindAdapter[model.Incident, *model.Incident]{svc: incidents, validate: v, immutable: true},
			storeclient.Kesehatan:      &kindAdapter[model.HealthRecord, *model.HealthRecord]{svc: health, validate: v},
			storeclient.AbsensiHistory: &kindAdapter[model.AttendanceRecord, *model.AttendanceRecord]{svc: history, validate: v, immutable: true},
			storeclient.Admin:          &kindAdapter[model.Admin, *model.Admin]{svc: admins, validate: v},
		},
		order:  storeclient.Collections,
		logger: logger,
	}
}

// ────── Snapshot ──────

func (s *storeService) Snapshot(ctx context.Context) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(s.order))
	for _, name := range s.order {
		items, err := s.kinds[name].list(ctx)
		if err != nil {
			return nil, err
		}
		out[name] = items
	}
	return out, nil
}

// ────── Apply ──────

func (s *storeService) Apply(ctx context.Context, req *dto.StoreRequest) (interface{}, error) {
	kind, ok := s.kinds[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStoreUnknownType, req.Type)
	}
	if len(bytes.TrimSpace(req.Payload)) == 0 {
		return nil, ErrStoreBadPayload
	}

	var (
		result interface{}
		err    error
	)
	switch storeclient.Action(req.Action) {
	case storeclient.ActionAdd:
		result, err = kind.add(ctx, req.Payload)
	case storeclient.ActionUpdate:
		result, err = kind.update(ctx, req.Payload)
	case storeclient.ActionDelete:
		var id uint
		if id, err = payloadID(req.Payload); err == nil {
			if err = kind.remove(ctx, id); err == nil {
				result = &dto.StoreDeleted{ID: id}
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrStoreUnknownAction, req.Action)
	}
	if err != nil {
		s.logger.Info("store mutation rejected",
			zap.String("action", req.Action),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// payloadID accepts a bare id (number or numeric string) or an object carrying "id".
func payloadID(payload json.RawMessage) (uint, error) {
	var raw json.RawMessage = payload
	var obj struct {
		ID json.RawMessage `json:"id"`
	}
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStoreBadPayload, err)
		}
		raw = obj.ID
	}

	var n uint
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if v, perr := strconv.ParseUint(text, 10, 64); perr == nil && v > 0 {
			return uint(v), nil
		}
	}
	return 0, fmt.Errorf("%w: missing or invalid id", ErrStoreBadPayload)
}
