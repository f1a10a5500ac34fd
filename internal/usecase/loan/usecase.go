package loan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "agrifund-backend/internal/domain/loan"
	"agrifund-backend/internal/notify"
	"agrifund-backend/pkg/id"
)

const confirmationMessage = "Your loan application has been received and is pending review."

// Ledger owns loan applications: it enforces the credit-limit and
// single-application rules and computes the derived progress fields.
type Ledger struct {
	repo domain.Repository
	sink notify.Sink
	log  *zap.Logger

	defaultCreditLimit float64
	notifyTimeout      time.Duration
	recomputeDerived   bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*Ledger)

// WithDefaultCreditLimit overrides the fallback limit applied when a caller
// submits without one.
func WithDefaultCreditLimit(v float64) Option {
	return func(l *Ledger) {
		if v > 0 {
			l.defaultCreditLimit = v
		}
	}
}

// WithNotifyTimeout bounds the confirmation dispatch; a timeout counts as a
// failed delivery, never as a failed submission.
func WithNotifyTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.notifyTimeout = d
		}
	}
}

// WithRecomputeDerived switches UpdateLatest from raw-merge to recomputing
// remaining_amount and progress_percentage from paid_amount whenever the
// patch does not set them explicitly.
func WithRecomputeDerived(on bool) Option {
	return func(l *Ledger) { l.recomputeDerived = on }
}

func NewLedger(repo domain.Repository, sink notify.Sink, log *zap.Logger, opts ...Option) *Ledger {
	if sink == nil {
		sink = notify.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{
		repo:               repo,
		sink:               sink,
		log:                log,
		defaultCreditLimit: 5000,
		notifyTimeout:      2 * time.Second,
		locks:              make(map[string]*sync.Mutex),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// userLock serializes check-then-create per user so concurrent submissions
// cannot both pass the duplicate check.
func (l *Ledger) userLock(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}

func (l *Ledger) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if in.UserID == "" {
		return nil, errors.New("missing user id")
	}

	limit := in.CreditLimit
	if limit <= 0 {
		limit = l.defaultCreditLimit
	}

	total := domain.CropItems(in.CropItems).Total()
	if total > limit {
		return nil, fmt.Errorf("total %.2f over limit %.2f: %w", total, limit, domain.ErrCreditLimitExceeded)
	}

	lock := l.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	_, err := l.repo.FindLatestByUser(ctx, in.UserID)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateApplication
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	app := &domain.LoanApplication{
		ApplicationID:      id.NewID32(),
		UserID:             in.UserID,
		ApplicantName:      in.ApplicantName,
		Phone:              in.Phone,
		CropName:           in.CropName,
		CropItems:          in.CropItems,
		TotalAmount:        total,
		PaidAmount:         0,
		RemainingAmount:    total,
		ProgressPercentage: 0,
		Status:             domain.StatusPending,
		NextPaymentDate:    "",
		MonthlyPayment:     0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := l.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	return &SubmitResult{
		Application:        toDTO(app),
		NotificationStatus: l.notifyCreated(ctx, app),
	}, nil
}

// notifyCreated dispatches the fixed confirmation SMS. Errors and timeouts
// are downgraded to a delivery status; the created record is never rolled back.
func (l *Ledger) notifyCreated(ctx context.Context, app *domain.LoanApplication) notify.DeliveryStatus {
	if app.Phone == "" {
		return notify.StatusNotSent
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.notifyTimeout)
	defer cancel()
	if err := l.sink.Send(nctx, app.Phone, confirmationMessage); err != nil {
		l.log.Warn("loan confirmation sms failed",
			zap.String("application_id", app.ApplicationID),
			zap.Error(err))
		return notify.StatusFailed
	}
	return notify.StatusSent
}

func (l *Ledger) Latest(ctx context.Context, userID string) (*ApplicationDTO, error) {
	app, err := l.repo.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(app)
	return &dto, nil
}

func (l *Ledger) History(ctx context.Context, userID string) ([]ApplicationDTO, error) {
	apps, err := l.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, toDTO(&apps[i]))
	}
	return out, nil
}

func (l *Ledger) UpdateLatest(ctx context.Context, userID string, p Patch) (*ApplicationDTO, error) {
	if p.Status != nil && !domain.ValidStatus(*p.Status) {
		return nil, fmt.Errorf("status %q: %w", *p.Status, domain.ErrInvalidStatus)
	}

	app, err := l.repo.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if p.Status != nil {
		app.Status = *p.Status
	}
	if p.PaidAmount != nil {
		app.PaidAmount = *p.PaidAmount
	}
	if p.RemainingAmount != nil {
		app.RemainingAmount = *p.RemainingAmount
	}
	if p.ProgressPercentage != nil {
		app.ProgressPercentage = *p.ProgressPercentage
	}
	if p.NextPaymentDate != nil {
		app.NextPaymentDate = *p.NextPaymentDate
	}
	if p.MonthlyPayment != nil {
		app.MonthlyPayment = *p.MonthlyPayment
	}

	// Default behavior is a raw merge: a patch that changes paid_amount
	// without the derived fields leaves them as-is. The recompute option
	// re-derives them unless the patch set them explicitly.
	if l.recomputeDerived && p.PaidAmount != nil {
		if p.RemainingAmount == nil {
			app.RemainingAmount = app.TotalAmount - app.PaidAmount
		}
		if p.ProgressPercentage == nil {
			if app.TotalAmount > 0 {
				app.ProgressPercentage = app.PaidAmount / app.TotalAmount * 100
			} else {
				app.ProgressPercentage = 0
			}
		}
	}

	app.UpdatedAt = time.Now().UTC()
	if err := l.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	dto := toDTO(app)
	return &dto, nil
}
