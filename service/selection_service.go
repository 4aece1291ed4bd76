package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	daoredis "es-server/dao/redis"
	"es-server/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MIN_RADIUS = 0.0
	MAX_RADIUS = 10.0

	// Radii are kept to one decimal place.
	RADIUS_STEPS_PER_UNIT = 10
)

// SelectionService owns the per-session dashboard controls.
type SelectionService struct {
	sessionDao      *daoredis.RedisSessionDAO
	locations       *LocationService
	defaultTimezone string
	now             func() time.Time
	logger          *zap.Logger
}

func NewSelectionService(
	sessionDao *daoredis.RedisSessionDAO,
	locations *LocationService,
	defaultTimezone string,
	logger *zap.Logger) *SelectionService {

	return &SelectionService{
		sessionDao:      sessionDao,
		locations:       locations,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
		logger:          logger,
	}
}

// SetClock overrides the time source used for "today" and timestamps.
func (ss *SelectionService) SetClock(now func() time.Time) {
	ss.now = now
}

// CreateSession starts a session with default controls and, when the
// directory answers, the first saved location selected. A failed directory
// fetch is reported as a warning and the session is still created.
func (ss *SelectionService) CreateSession(ctx context.Context) (*models.Session, []string, error) {
	now := ss.now().UTC()
	session := &models.Session{
		ID:          uuid.NewString(),
		DateRangeID: models.DefaultDateRangeID,
		Categories:  models.DefaultCategories(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	warnings, err := ss.ensureLocations(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	if err := ss.sessionDao.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}
	ss.logger.Info("[SelectionService] Session created",
		zap.String("session_id", session.ID), zap.Int("locations", len(session.Locations)))
	return session, warnings, nil
}

func (ss *SelectionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return ss.sessionDao.GetSession(ctx, id)
}

// DeleteSession ends a session. Unknown ids are not an error.
func (ss *SelectionService) DeleteSession(ctx context.Context, id string) error {
	return ss.sessionDao.DeleteSession(ctx, id)
}

// ActiveSessions counts sessions that have not expired.
func (ss *SelectionService) ActiveSessions(ctx context.Context) (int, error) {
	ids, err := ss.sessionDao.ListSessionIDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (ss *SelectionService) SaveSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = ss.now().UTC()
	return ss.sessionDao.SaveSession(ctx, session)
}

// StoreView keeps the last rendered dashboard next to the session.
func (ss *SelectionService) StoreView(ctx context.Context, id string, view *models.DashboardView) error {
	return ss.sessionDao.SaveView(ctx, id, view)
}

func (ss *SelectionService) LastView(ctx context.Context, id string) (*models.DashboardView, error) {
	return ss.sessionDao.GetView(ctx, id)
}

// Locations returns the session's cached locations, fetching them on first use.
func (ss *SelectionService) Locations(ctx context.Context, id string) ([]models.Location, []string, error) {
	session, err := ss.sessionDao.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := ss.Refresh(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return session.Locations, warnings, nil
}

// Refresh loads missing locations into the session and persists them when
// the fetch succeeded. Locations are merged into the stored session so a
// selection change made during the fetch is kept.
func (ss *SelectionService) Refresh(ctx context.Context, session *models.Session) ([]string, error) {
	if len(session.Locations) > 0 {
		return nil, nil
	}
	warnings, err := ss.ensureLocations(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(session.Locations) == 0 {
		return warnings, nil
	}

	stored, err := ss.sessionDao.GetSession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if len(stored.Locations) == 0 {
		stored.Locations = session.Locations
		if stored.LocationID == "" {
			stored.LocationID = session.LocationID
			if stored.Radius == nil {
				stored.Radius = session.Radius
			}
		}
		if err := ss.SaveSession(ctx, stored); err != nil {
			return nil, err
		}
	}
	*session = *stored
	return warnings, nil
}

func (ss *SelectionService) ensureLocations(ctx context.Context, session *models.Session) ([]string, error) {
	if len(session.Locations) > 0 {
		return nil, nil
	}
	locations, err := ss.locations.ListLocations(ctx)
	if errors.Is(err, ErrMissingCredential) {
		return nil, err
	}
	if err != nil {
		ss.logger.Warn("[SelectionService] Saved locations unavailable",
			zap.String("session_id", session.ID), zap.Error(err))
		return []string{fmt.Sprintf("Could not load saved locations: %v", err)}, nil
	}

	session.Locations = locations
	if session.LocationID == "" && len(locations) > 0 {
		ss.selectLocation(session, &locations[0])
	}
	return nil, nil
}

func (ss *SelectionService) selectLocation(session *models.Session, loc *models.Location) {
	session.LocationID = loc.ID
	radius := clampRadius(loc.Radius)
	session.Radius = &radius
}

// UpdateSelection validates and applies a partial update. Changing the
// location resets the radius to the new location's suggestion unless the
// same update also sets a radius. When the saved locations cannot be loaded
// the location change is skipped, the rest of the update is applied and the
// fetch failure comes back as a warning.
func (ss *SelectionService) UpdateSelection(ctx context.Context, id string, update models.SelectionUpdate) (*models.Session, []string, error) {
	session, err := ss.sessionDao.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if update.LocationID != nil && *update.LocationID != session.LocationID {
		if warnings, err = ss.ensureLocations(ctx, session); err != nil {
			return nil, nil, err
		}
		loc := models.FindLocation(session.Locations, *update.LocationID)
		switch {
		case loc != nil:
			ss.selectLocation(session, loc)
		case len(warnings) == 0:
			return nil, nil, fmt.Errorf("%w: unknown location %q", ErrInvalidSelection, *update.LocationID)
		}
	}

	if update.DateRangeID != nil {
		if !models.IsDateRangeID(*update.DateRangeID) {
			return nil, nil, fmt.Errorf("%w: unknown date range %q", ErrInvalidSelection, *update.DateRangeID)
		}
		session.DateRangeID = *update.DateRangeID
	}

	if update.Radius != nil {
		radius, err := ValidateRadius(*update.Radius)
		if err != nil {
			return nil, nil, err
		}
		session.Radius = &radius
	}

	if update.Categories != nil {
		categories, err := models.NormalizeCategories(update.Categories)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
		session.Categories = categories
	}

	if err := ss.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}
	ss.logger.Debug("[SelectionService] Selection updated", zap.String("session_id", id))
	return session, warnings, nil
}

// Resolve expands the session into a Selection. Presets are anchored to
// today in the location's zone, or the default zone when no location is set.
func (ss *SelectionService) Resolve(session *models.Session) (models.Selection, error) {
	sel := models.Selection{
		Radius:     session.Radius,
		Categories: append([]string(nil), session.Categories...),
	}

	tz := ss.defaultTimezone
	if loc := models.FindLocation(session.Locations, session.LocationID); loc != nil {
		sel.Location = loc
		suggested := loc.SuggestedRadius()
		sel.SuggestedRadius = &suggested
		tz = loc.TZ
	}

	options, err := ss.DateRanges(tz)
	if err != nil {
		return models.Selection{}, err
	}
	sel.DateRanges = options
	sel.DateRange = models.FindDateRange(options, session.DateRangeID)
	return sel, nil
}

// DateRanges computes the presets for today in tz, falling back to the
// default zone when tz cannot be loaded.
func (ss *SelectionService) DateRanges(tz string) ([]models.DateRange, error) {
	today, err := models.TodayIn(tz, ss.now())
	if err != nil {
		ss.logger.Warn("[SelectionService] Bad timezone, using default",
			zap.String("timezone", tz), zap.Error(err))
		if today, err = models.TodayIn(ss.defaultTimezone, ss.now()); err != nil {
			return nil, err
		}
	}
	return models.DateRangeOptions(today), nil
}

// ValidateRadius accepts [MIN_RADIUS, MAX_RADIUS] and rounds to one decimal.
func ValidateRadius(r float64) (float64, error) {
	if math.IsNaN(r) || r < MIN_RADIUS || r > MAX_RADIUS {
		return 0, fmt.Errorf("%w: radius %v outside [%v, %v]", ErrInvalidSelection, r, MIN_RADIUS, MAX_RADIUS)
	}
	return roundRadius(r), nil
}

func clampRadius(r float64) float64 {
	return roundRadius(math.Max(MIN_RADIUS, math.Min(MAX_RADIUS, r)))
}

func roundRadius(r float64) float64 {
	return math.Round(r*RADIUS_STEPS_PER_UNIT) / RADIUS_STEPS_PER_UNIT
}
