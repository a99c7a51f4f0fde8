package experience

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/jonathan/jobboard/internal/validation"
)

// Field names a form field of the editor.
type Field string

const (
	FieldCompanyName      Field = "companyName"
	FieldLocation         Field = "location"
	FieldWebsite          Field = "website"
	FieldIndustry         Field = "industry"
	FieldPosition         Field = "position"
	FieldStartMonth       Field = "startMonth"
	FieldStartYear        Field = "startYear"
	FieldEndMonth         Field = "endMonth"
	FieldEndYear          Field = "endYear"
	FieldCurrentlyWorking Field = "currentlyWorking"
	FieldResponsibilities Field = "responsibilities"

	// FieldEndDate carries the end-before-start error.
	FieldEndDate Field = "endDate"
)

// Messages shown next to invalid fields.
const (
	MsgCompanyRequired  = "Укажите название компании"
	MsgPositionRequired = "Укажите должность"
	MsgEndBeforeStart   = "Дата окончания не может быть раньше даты начала"
	MsgMonthRange       = "Месяц должен быть от 1 до 12"
)

// Draft is the editable form state. End fields are kept even while
// CurrentlyWorking is set so unchecking it restores them. JSON keys match
// types.WorkExperience; field errors are keyed by the form tag.
type Draft struct {
	CompanyName      string `json:"company_name" form:"companyName" validate:"required"`
	Location         string `json:"location" form:"location"`
	Website          string `json:"website" form:"website"`
	Industry         string `json:"industry" form:"industry"`
	Position         string `json:"position" form:"position" validate:"required"`
	StartMonth       int    `json:"start_month" form:"startMonth" validate:"min=1,max=12"`
	StartYear        int    `json:"start_year" form:"startYear" validate:"min=1"`
	EndMonth         int    `json:"end_month" form:"endMonth"`
	EndYear          int    `json:"end_year" form:"endYear"`
	CurrentlyWorking bool   `json:"currently_working" form:"currentlyWorking"`
	Responsibilities string `json:"responsibilities" form:"responsibilities"`
}

// Record returns the normalized record: text trimmed, end fields nil while
// currently working.
func (d Draft) Record() types.WorkExperience {
	rec := types.WorkExperience{
		CompanyName:      strings.TrimSpace(d.CompanyName),
		Location:         strings.TrimSpace(d.Location),
		Website:          strings.TrimSpace(d.Website),
		Industry:         strings.TrimSpace(d.Industry),
		Position:         strings.TrimSpace(d.Position),
		StartMonth:       d.StartMonth,
		StartYear:        d.StartYear,
		CurrentlyWorking: d.CurrentlyWorking,
		Responsibilities: d.Responsibilities,
	}
	if !d.CurrentlyWorking {
		endMonth, endYear := d.EndMonth, d.EndYear
		rec.EndMonth = &endMonth
		rec.EndYear = &endYear
	}
	return rec
}

// DraftFrom fills a draft from rec. Missing end fields default to January of
// the current year.
func DraftFrom(rec types.WorkExperience, now time.Time) Draft {
	d := Draft{
		CompanyName:      rec.CompanyName,
		Location:         rec.Location,
		Website:          rec.Website,
		Industry:         rec.Industry,
		Position:         rec.Position,
		StartMonth:       rec.StartMonth,
		StartYear:        rec.StartYear,
		EndMonth:         1,
		EndYear:          now.Year(),
		CurrentlyWorking: rec.CurrentlyWorking,
		Responsibilities: rec.Responsibilities,
	}
	if d.StartMonth == 0 {
		d.StartMonth = 1
	}
	if d.StartYear == 0 {
		d.StartYear = now.Year()
	}
	if rec.EndMonth != nil {
		d.EndMonth = *rec.EndMonth
	}
	if rec.EndYear != nil {
		d.EndYear = *rec.EndYear
	}
	return d
}

func draftRules(sl validator.StructLevel) {
	d := sl.Current().Interface().(Draft)
	if d.CurrentlyWorking {
		return
	}
	if d.EndMonth < 1 || d.EndMonth > 12 {
		sl.ReportError(d.EndMonth, string(FieldEndMonth), "EndMonth", "month", "")
		return
	}
	if d.EndYear < d.StartYear || (d.EndYear == d.StartYear && d.EndMonth < d.StartMonth) {
		sl.ReportError(d.EndYear, string(FieldEndDate), "EndYear", "enddate", "")
	}
}

func init() {
	validation.Validator().RegisterStructValidation(draftRules, Draft{})
}

// Validate checks the draft and returns field messages keyed by Field, or nil.
func (d Draft) Validate() map[string]string {
	trimmed := d
	trimmed.CompanyName = strings.TrimSpace(d.CompanyName)
	trimmed.Position = strings.TrimSpace(d.Position)

	err := validation.FromError("experience.Validate", validation.Validator().Struct(trimmed), map[string]string{
		string(FieldCompanyName): MsgCompanyRequired,
		string(FieldPosition):    MsgPositionRequired,
		string(FieldEndDate):     MsgEndBeforeStart,
		string(FieldStartMonth):  MsgMonthRange,
		string(FieldEndMonth):    MsgMonthRange,
	})
	if err == nil {
		return nil
	}
	return apperrors.FieldsOf(err)
}

// State is the editor lifecycle state.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// Result is what a successful save emits to the owning list. Index is -1 for
// a new entry.
type Result struct {
	Index  int
	Record types.WorkExperience
}

// IsEdit reports whether the result replaces an existing entry.
func (r Result) IsEdit() bool { return r.Index >= 0 }

// Editor is the add/edit form for one work-experience entry. It is closed
// until OpenAdd or OpenEdit; Save closes it on success and keeps it open with
// field errors otherwise.
type Editor struct {
	now    func() time.Time
	state  State
	index  int
	draft  Draft
	errors map[string]string
}

// NewEditor returns a closed editor. A nil clock means time.Now.
func NewEditor(now func() time.Time) *Editor {
	if now == nil {
		now = time.Now
	}
	return &Editor{now: now, index: -1}
}

func (e *Editor) State() State { return e.state }
func (e *Editor) IsOpen() bool { return e.state == StateOpen }
func (e *Editor) Index() int   { return e.index }
func (e *Editor) Draft() Draft { return e.draft }

// Errors returns a copy of the current field errors.
func (e *Editor) Errors() map[string]string {
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// OpenAdd opens a blank form.
func (e *Editor) OpenAdd() {
	year := e.now().Year()
	e.state = StateOpen
	e.index = -1
	e.draft = Draft{StartMonth: 1, StartYear: year, EndMonth: 1, EndYear: year}
	e.errors = nil
}

// OpenEdit opens the form prefilled with rec, remembering its list index.
func (e *Editor) OpenEdit(index int, rec types.WorkExperience) {
	e.state = StateOpen
	e.index = index
	e.draft = DraftFrom(rec, e.now())
	e.errors = nil
}

// Set updates one field and clears that field's error. Numeric fields
// accept int or a decimal string.
func (e *Editor) Set(field Field, value any) error {
	if e.state != StateOpen {
		return ErrEditorClosed
	}

	d := &e.draft
	var err error
	switch field {
	case FieldCompanyName:
		d.CompanyName, err = asString(field, value)
	case FieldLocation:
		d.Location, err = asString(field, value)
	case FieldWebsite:
		d.Website, err = asString(field, value)
	case FieldIndustry:
		d.Industry, err = asString(field, value)
	case FieldPosition:
		d.Position, err = asString(field, value)
	case FieldResponsibilities:
		d.Responsibilities, err = asString(field, value)
	case FieldStartMonth:
		d.StartMonth, err = asInt(field, value)
	case FieldStartYear:
		d.StartYear, err = asInt(field, value)
	case FieldEndMonth:
		d.EndMonth, err = asInt(field, value)
	case FieldEndYear:
		d.EndYear, err = asInt(field, value)
	case FieldCurrentlyWorking:
		b, ok := value.(bool)
		if !ok {
			return &FieldError{Field: field, Message: "expected a boolean"}
		}
		d.CurrentlyWorking = b
	default:
		return &FieldError{Field: field, Message: "unknown field"}
	}
	if err != nil {
		return err
	}

	delete(e.errors, string(field))
	return nil
}

// Save validates the draft. On success the editor closes and the normalized
// record is returned with its index; otherwise the editor stays open and the
// field errors are returned as a validation error.
func (e *Editor) Save() (Result, error) {
	if e.state != StateOpen {
		return Result{}, ErrEditorClosed
	}

	if fields := e.draft.Validate(); fields != nil {
		e.errors = fields
		return Result{}, apperrors.Validation("experience.Save", fields)
	}

	res := Result{Index: e.index, Record: e.draft.Record()}
	e.close()
	return res, nil
}

// Cancel closes an open editor without emitting. It reports whether the
// editor was open.
func (e *Editor) Cancel() bool {
	if e.state != StateOpen {
		return false
	}
	e.close()
	return true
}

// KeyEvent closes the editor on Escape.
func (e *Editor) KeyEvent(key string) bool {
	if key == "Escape" {
		return e.Cancel()
	}
	return false
}

func (e *Editor) close() {
	e.state = StateClosed
	e.index = -1
	e.draft = Draft{}
	e.errors = nil
}

func asString(field Field, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &FieldError{Field: field, Message: "expected a string"}
	}
	return s, nil
}

func asInt(field Field, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, &FieldError{Field: field, Message: "expected a whole number"}
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, &FieldError{Field: field, Message: "expected a number"}
		}
		return n, nil
	default:
		return 0, &FieldError{Field: field, Message: "expected a number"}
	}
}
