package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	employeeerrors "github.com/pathakpriyanka774/hrms-lite/internal/employee/errors"
	"github.com/pathakpriyanka774/hrms-lite/internal/events"
	"github.com/pathakpriyanka774/hrms-lite/internal/messaging/kafka"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeListCacheKey = "employees:list"
	// EmployeeListGenerationKey is incremented after every committed roster write.
	EmployeeListGenerationKey = "employees:list:gen"
)

// ListCacheKey is where the roster read at generation gen is cached.
func ListCacheKey(gen string) string {
	return EmployeeListCacheKey + ":" + gen
}

const defaultCacheTTL = time.Minute

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Delete(ctx context.Context, employeeID string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	writes   atomic.Uint64
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, cacheTTL, logger...)
}

// NewServiceWithOutbox queues employee lifecycle events in the same transaction as the write.
// outboxRepo and rdb are both optional.
func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("email", req.Email),
	)

	empl, err := NewEmployee(req)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Pre-checks give precise errors; the primary key and unique index still decide races.
	exists, err := qtx.Exists(ctx, empl.EmployeeID)
	if err != nil {
		s.logger.Error("create employee id check failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		s.logger.Warn("create employee duplicate id", zap.String("employee_id", empl.EmployeeID))
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists
	}

	emailTaken, err := qtx.ExistsByEmail(ctx, empl.Email)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if emailTaken {
		s.logger.Warn("create employee duplicate email", zap.String("email", empl.Email))
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	}

	if err := qtx.Create(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		} else {
			s.logger.Warn("create employee rejected by constraint", zap.String("request_id", rid), zap.Error(mapped))
		}
		return EmployeeResponse{}, mapped
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", empl.EmployeeID, events.EventEmployeeCreated, events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:  events.EventEmployeeCreated,
				RequestID:  rid,
				EmployeeID: empl.EmployeeID,
				FullName:   empl.FullName,
				Email:      empl.Email,
				Department: empl.Department,
				OccurredAt: time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("create employee build event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.EmployeeID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapped
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("request_id", contextutil.GetRequestID(ctx)))

	gen, cacheable := s.listGeneration(ctx)
	if cacheable {
		if cached, err := s.rdb.Get(ctx, ListCacheKey(gen)).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Readers only share a query that started after the last write they could have observed.
	flightKey := fmt.Sprintf("%s:%d:%s", EmployeeListCacheKey, s.writes.Load(), gen)
	v, err, _ := s.sf.Do(flightKey, func() (interface{}, error) {
		fctx := context.WithoutCancel(ctx)

		empls, err := s.repo.FindAll(fctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if cacheable {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(fctx, ListCacheKey(gen), jsonData, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// listGeneration returns the shared roster generation. The cache is skipped when redis is
// absent or the generation cannot be read.
func (s *service) listGeneration(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	gen, err := s.rdb.Get(ctx, EmployeeListGenerationKey).Result()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return "0", true
	default:
		s.logger.Warn("read employee list generation failed", zap.Error(err))
		return "", false
	}
}

func (s *service) Delete(ctx context.Context, employeeID string) error {
	rid := contextutil.GetRequestID(ctx)
	id := NormalizeEmployeeID(employeeID)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	if id == "" {
		return employeeerrors.ErrEmployeeNotFound
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("delete employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.Exists(ctx, id)
	if err != nil {
		s.logger.Error("delete employee existence check failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if !exists {
		s.logger.Warn("delete employee not found", zap.String("employee_id", id))
		return employeeerrors.ErrEmployeeNotFound
	}

	removed, err := qtx.DeleteAttendance(ctx, id)
	if err != nil {
		s.logger.Error("delete employee attendance cascade failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		// deleted by a concurrent request between the check and the delete
		return employeeerrors.ErrEmployeeNotFound
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", id, events.EventEmployeeDeleted, events.EmployeeLifecycleTopic,
			events.EmployeeDeletedEvent{
				EventType:                events.EventEmployeeDeleted,
				RequestID:                rid,
				EmployeeID:               id,
				RemovedAttendanceRecords: removed,
				OccurredAt:               time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("delete employee build event failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("delete employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("delete employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
		zap.Int64("removed_attendance_records", removed),
	)
	return nil
}

// invalidateListCache moves readers to a new generation. Lists cached under older
// generations are never read again and expire with their TTL.
func (s *service) invalidateListCache(ctx context.Context) {
	s.writes.Add(1)
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(context.WithoutCancel(ctx), EmployeeListGenerationKey).Err(); err != nil {
		s.logger.Error("failed to bump employee list generation",
			zap.Error(err),
			zap.String("key", EmployeeListGenerationKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
