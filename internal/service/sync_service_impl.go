package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/lms"
	"github.com/alexanderramin/semester/internal/notify"
	"github.com/alexanderramin/semester/internal/reconcile"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Reconciler is the part of reconcile.Engine the sync service drives.
type Reconciler interface {
	SyncAll(ctx context.Context, conns []*domain.LMSConnection) []reconcile.ConnectionResult
	SyncConnection(ctx context.Context, conn *domain.LMSConnection) reconcile.ConnectionResult
	ImportCourse(ctx context.Context, conn *domain.LMSConnection, ext lms.ExternalCourse) reconcile.CourseResult
}

var _ Reconciler = (*reconcile.Engine)(nil)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

type syncService struct {
	userID          string
	defaultInstance string
	connections     repository.ConnectionRepo
	provider        lms.Provider
	engine          Reconciler
	notifier        notify.Notifier
	observer        UseCaseObserver
}

func NewSyncService(
	userID string,
	defaultInstance string,
	connections repository.ConnectionRepo,
	provider lms.Provider,
	engine Reconciler,
	notifier notify.Notifier,
	observers ...UseCaseObserver,
) SyncService {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &syncService{
		userID:          userID,
		defaultInstance: defaultInstance,
		connections:     connections,
		provider:        provider,
		engine:          engine,
		notifier:        notifier,
		observer:        useCaseObserverOrNoop(observers),
	}
}

func (s *syncService) Connect(ctx context.Context, req contract.ConnectRequest) (*domain.LMSConnection, error) {
	if err := requestValidator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	instance := req.InstanceURL
	if instance == "" {
		instance = string(req.Provider) + ".local"
		if req.Provider == domain.ProviderCanvas {
			instance = s.defaultInstance
		}
	}
	now := time.Now().UTC()
	conn := &domain.LMSConnection{
		ID:          uuid.New().String(),
		UserID:      s.userID,
		Provider:    req.Provider,
		InstanceURL: instance,
		AccessToken: req.AccessToken,
		SyncStatus:  domain.SyncNever,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.connections.Create(ctx, conn); err != nil {
		return nil, err
	}
	mode := "live"
	if conn.IsSimulated() || conn.Provider != domain.ProviderCanvas {
		mode = "simulated"
	}
	s.notifier.Notify(ctx, fmt.Sprintf("Connected %s at %s (%s)", conn.Provider, conn.InstanceURL, mode), domain.NotifySuccess)
	return conn, nil
}

func (s *syncService) ListConnections(ctx context.Context) ([]*domain.LMSConnection, error) {
	return s.connections.List(ctx, s.userID)
}

// Disconnect removes the connection only. Imported courses stay and keep
// their external references, so reconnecting reuses them.
func (s *syncService) Disconnect(ctx context.Context, id string) error {
	return s.connections.Delete(ctx, id)
}

func (s *syncService) ListRemoteCourses(ctx context.Context, connectionID string) ([]lms.ExternalCourse, error) {
	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	return s.provider.FetchCourses(ctx, conn)
}

// SyncAll reconciles every connection of the user. A status that cannot be
// recorded does not stop the others; the report is returned alongside the
// joined errors.
func (s *syncService) SyncAll(ctx context.Context) (report *contract.SyncReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if report != nil {
			t := report.Totals()
			fields["connections"] = len(report.Results)
			fields["failed"] = report.Failed()
			fields["inserted"] = t.Inserted
			fields["updated"] = t.Updated
		}
		observe(ctx, s.observer, "sync-all", startedAt, fields, err)
	}()

	conns, err := s.connections.List(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	results := s.engine.SyncAll(ctx, conns)
	var errs []error
	for i, res := range results {
		if err := s.recordStatus(ctx, conns[i], res); err != nil {
			errs = append(errs, fmt.Errorf("connection %s: %w", conns[i].ID, err))
		}
	}
	return &contract.SyncReport{Results: results}, errors.Join(errs...)
}

func (s *syncService) SyncConnection(ctx context.Context, connectionID string) (result *reconcile.ConnectionResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"connection_id": connectionID}
	defer func() {
		if result != nil {
			fields["status"] = string(result.Status)
			fields["partial"] = result.Partial()
		}
		observe(ctx, s.observer, "sync-connection", startedAt, fields, err)
	}()

	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	res := s.engine.SyncConnection(ctx, conn)
	if err := s.recordStatus(ctx, conn, res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ImportCourse reconciles one course of the connection, found by its
// external id.
func (s *syncService) ImportCourse(ctx context.Context, req contract.ImportCourseRequest) (result *reconcile.CourseResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"connection_id": req.ConnectionID, "external_id": req.ExternalID}
	defer func() {
		observe(ctx, s.observer, "import-course", startedAt, fields, err)
	}()

	if err := requestValidator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	conn, err := s.connections.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, err
	}
	externals, err := s.provider.FetchCourses(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("fetching courses: %w", err)
	}
	var ext *lms.ExternalCourse
	for i := range externals {
		if externals[i].ExternalID == req.ExternalID {
			ext = &externals[i]
			break
		}
	}
	if ext == nil {
		return nil, domain.NewNotFoundError(string(conn.Provider)+" course", req.ExternalID)
	}

	res := s.engine.ImportCourse(ctx, conn, *ext)
	fields["inserted"] = res.Inserted
	fields["updated"] = res.Updated
	if res.Err != nil {
		s.notifier.Notify(ctx, fmt.Sprintf("Import of %s failed: %v", ext.Name, res.Err), domain.NotifyError)
		return &res, fmt.Errorf("importing %s: %w", ext.Name, res.Err)
	}
	s.notifier.Notify(ctx, fmt.Sprintf("Imported %s: %d new and %d updated assignment(s)", ext.Name, res.Inserted, res.Updated), domain.NotifySuccess)
	return &res, nil
}

func (s *syncService) recordStatus(ctx context.Context, conn *domain.LMSConnection, res reconcile.ConnectionResult) error {
	finished := res.FinishedAt
	if finished.IsZero() {
		finished = time.Now().UTC()
	}
	conn.MarkSynced(res.Status, finished)
	if err := s.connections.Update(ctx, conn); err != nil {
		return fmt.Errorf("recording sync status: %w", err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, domain.NewValidationError(fe.Field(), "failed "+fe.Tag()))
	}
	return errors.Join(errs...)
}
