package usecase

import (
	"context"
	"sort"
	"time"

	"careslot/internal/delivery/dto"
	"careslot/internal/domain/entity"
	"careslot/internal/domain/repository"
	"careslot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultDateRangeDays is the size of the lookahead window when the
// caller gives no explicit date range.
const defaultDateRangeDays = 30

const (
	msgNoWeeklySchedule  = "Doctor has no weekly schedule configured"
	msgNotAvailableToday = "Doctor is not available on this day"
)

// AvailabilityUsecase is a read-only projection from the weekly template
// and the booked appointments to open dates and open slots.
type AvailabilityUsecase interface {
	ListAvailableDates(ctx context.Context, doctorID uuid.UUID, centerID *uuid.UUID, startDate, endDate string) (*dto.AvailableDatesResponse, error)
	ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, centerID *uuid.UUID) (*dto.AvailableSlotsResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	scheduleRepo      repository.WeeklyScheduleRepository
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	slotCache         *service.SlotCacheService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.WeeklyScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	slotCache *service.SlotCacheService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		scheduleRepo:      scheduleRepo,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		slotCache:         slotCache,
	}
}

// ListAvailableDates reports the calendar dates inside the requested range
// that fall on one of the doctor's working days. Only the recurring
// template is consulted here; remaining capacity is a per-date question
// answered by ListAvailableSlots.
func (u *availabilityUsecase) ListAvailableDates(ctx context.Context, doctorID uuid.UUID, centerID *uuid.UUID, startDate, endDate string) (*dto.AvailableDatesResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	start, end, err := resolveDateRange(startDate, endDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	entries, err := u.scheduleRepo.FindAvailableByDoctor(u.db.WithContext(ctx), doctorID, centerID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if len(entries) == 0 {
		return &dto.AvailableDatesResponse{
			AvailableDates: []dto.AvailableDate{},
			WorkingDays:    []int{},
			Message:        msgNoWeeklySchedule,
		}, nil
	}

	dates, workingDays := buildAvailableDates(start, end, entries)
	return &dto.AvailableDatesResponse{
		AvailableDates: dates,
		WorkingDays:    workingDays,
		Total:          len(dates),
	}, nil
}

// ListAvailableSlots resolves the open time slots for one doctor and date
// by subtracting scheduled/confirmed appointments from the day's template.
func (u *availabilityUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, centerID *uuid.UUID) (*dto.AvailableSlotsResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if cached := u.slotCache.Get(ctx, doctorID, date, centerID); cached != nil {
		return cached, nil
	}

	entry, err := u.scheduleRepo.FindForDay(u.db.WithContext(ctx), doctorID, int(day.Weekday()), centerID)
	if err != nil {
		u.log.Warnf("Failed to find schedule entry for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	// An unavailable day is a normal outcome, not an error
	if entry == nil || !entry.IsAvailable {
		return &dto.AvailableSlotsResponse{
			Date:           date,
			Slots:          []string{},
			AvailableSlots: []dto.SlotView{},
			Message:        msgNotAvailableToday,
		}, nil
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	candidates := entry.OpenSlotTimes()
	sort.Strings(candidates)

	open, views := buildSlotViews(candidates, bookedTimeSet(appointments))

	result := &dto.AvailableSlotsResponse{
		Date:            date,
		Slots:           open,
		AvailableSlots:  views,
		ConsultationFee: entry.ConsultationFee,
	}

	u.slotCache.Set(ctx, doctorID, date, centerID, result)
	return result, nil
}

// resolveDateRange parses the optional bounds, defaulting to a window of
// defaultDateRangeDays starting today.
func resolveDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	// Dates are wall-clock labels, so the default start is today's local
	// calendar date, not the UTC one.
	year, month, day := time.Now().Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}

	end := start.AddDate(0, 0, defaultDateRangeDays)
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}

	return start, end, nil
}

// buildAvailableDates walks every calendar date from start to end
// inclusive and emits those whose weekday is in the working-day set.
// An inverted range yields no dates. Weekday numbering is 0=Sunday.
// Every entry's day counts as working, even when all of its slots are
// currently closed; such days are emitted with a slot count of zero.
func buildAvailableDates(start, end time.Time, entries []entity.WeeklySchedule) ([]dto.AvailableDate, []int) {
	slotCounts := make(map[int]int)
	for _, entry := range entries {
		count := len(entry.OpenSlotTimes())
		if existing, seen := slotCounts[entry.DayOfWeek]; !seen || count > existing {
			slotCounts[entry.DayOfWeek] = count
		}
	}

	workingDays := make([]int, 0, len(slotCounts))
	for day := range slotCounts {
		workingDays = append(workingDays, day)
	}
	sort.Ints(workingDays)

	dates := []dto.AvailableDate{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekday := int(d.Weekday())
		if count, ok := slotCounts[weekday]; ok {
			dates = append(dates, dto.AvailableDate{
				Date:      d.Format("2006-01-02"),
				DayOfWeek: weekday,
				SlotCount: count,
			})
		}
	}

	return dates, workingDays
}

// bookedTimeSet collects occupied times normalized to HH:MM, so a row
// stored as 09:00:00 blocks a 09:00 candidate.
func bookedTimeSet(appointments []entity.Appointment) map[string]bool {
	booked := make(map[string]bool, len(appointments))
	for _, appointment := range appointments {
		if t := entity.NormalizeClockTime(appointment.AppointmentTime); t != "" {
			booked[t] = true
		}
	}
	return booked
}

// buildSlotViews produces both result views: the open times alone, and
// every candidate annotated with its booked flag.
func buildSlotViews(candidates []string, booked map[string]bool) ([]string, []dto.SlotView) {
	open := []string{}
	views := make([]dto.SlotView, 0, len(candidates))
	for _, candidate := range candidates {
		isBooked := booked[candidate]
		views = append(views, dto.SlotView{Time: candidate, IsBooked: isBooked})
		if !isBooked {
			open = append(open, candidate)
		}
	}
	return open, views
}
