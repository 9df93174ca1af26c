package expense

import (
	"context"
	"encoding/json"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"

	errors "github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/transport"
	"github.com/arjav-14/cost-console/internal/user"
	"github.com/arjav-14/cost-console/pkg/logger"
)

const (
	maxReceiptSize     = 5 << 20
	maxMultipartMemory = 10 << 20
	receiptFieldName   = "bill_photo"
	dateLayout         = "2006-01-02"
)

// ServiceAPI defines the expense operations the handler dispatches to.
type ServiceAPI interface {
	CreateExpense(ctx context.Context, actor user.Actor, dto CreateExpenseDTO, receipt *ReceiptUpload) (*Expense, error)
	GetExpense(ctx context.Context, actor user.Actor, id int64) (*Expense, error)
	ListExpenses(ctx context.Context, actor user.Actor, filter ListFilter) ([]*Expense, error)
	UpdateStatus(ctx context.Context, actor user.Actor, id int64, dto UpdateStatusDTO) (*Expense, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// CreateExpense handles POST /expenses. Submissions arrive either as JSON or
// as multipart form data when a receipt is attached. Size and content-type
// limits on the attachment are enforced here, before the service sees it.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var dto CreateExpenseDTO
	var receipt *ReceiptUpload

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		parsed, appErr := parseCreateForm(r)
		if appErr != nil {
			h.HandleServiceError(w, appErr)
			return
		}
		dto = parsed

		file, header, err := r.FormFile(receiptFieldName)
		switch {
		case err == http.ErrMissingFile:
			// receipt is optional
		case err != nil:
			h.WriteError(w, http.StatusBadRequest, "invalid receipt upload")
			return
		default:
			defer file.Close()
			if appErr := checkReceipt(header); appErr != nil {
				h.HandleServiceError(w, appErr)
				return
			}
			receipt = &ReceiptUpload{
				Filename: header.Filename,
				Reader:   http.MaxBytesReader(w, file, maxReceiptSize),
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	exp, err := h.Service.CreateExpense(r.Context(), actor, dto, receipt)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

// ListExpenses handles GET /expenses. Visibility scoping happens in the
// service; this layer only parses the optional filters.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	filter, appErr := parseListFilter(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	expenses, err := h.Service.ListExpenses(r.Context(), actor, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// GetExpense handles GET /expenses/{id}.
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleServiceError(w, errors.ErrExpenseNotFound)
		return
	}

	exp, svcErr := h.Service.GetExpense(r.Context(), actor, id)
	if svcErr != nil {
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

// UpdateStatus handles PUT /expenses/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleServiceError(w, errors.ErrExpenseNotFound)
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, svcErr := h.Service.UpdateStatus(r.Context(), actor, id, dto)
	if svcErr != nil {
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func actorFrom(r *http.Request) (user.Actor, bool) {
	u, ok := user.FromContext(r.Context())
	if !ok || u == nil {
		return user.Actor{}, false
	}
	return u.Actor(), true
}

func parseCreateForm(r *http.Request) (CreateExpenseDTO, *errors.AppError) {
	dto := CreateExpenseDTO{
		ProjectName:   r.FormValue("project_name"),
		EmployeeName:  r.FormValue("employee_name"),
		ModeOfPayment: r.FormValue("mode_of_payment"),
		ExpenseHead:   r.FormValue("expense_head"),
		Description1:  r.FormValue("description1"),
		Description2:  r.FormValue("description2"),
		BillType:      r.FormValue("bill_type"),
	}

	if raw := r.FormValue("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return dto, errors.NewValidationFieldError("date", "date must be YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
		dto.Date = date
	}

	if raw := r.FormValue("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto, errors.NewValidationFieldError("amount", "amount must be a number", errors.ErrCodeInvalidAmount)
		}
		dto.Amount = amount
	}

	return dto, nil
}

func parseListFilter(r *http.Request) (ListFilter, *errors.AppError) {
	var filter ListFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			return filter, errors.NewValidationFieldError("status", "unknown status value", errors.ErrCodeInvalidStatus)
		}
		filter.Status = &status
	}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			return filter, errors.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
		filter.StartDate = &start
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			return filter, errors.NewValidationFieldError("end_date", "end_date must be YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
		filter.EndDate = &end
	}

	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func checkReceipt(header *multipart.FileHeader) *errors.AppError {
	if header.Size > maxReceiptSize {
		return errors.NewValidationFieldError(receiptFieldName, "receipt must not exceed 5MB", errors.ErrCodeInvalidReceipt)
	}

	contentType := header.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		return nil
	}
	return errors.NewValidationFieldError(receiptFieldName, "receipt must be an image or a PDF", errors.ErrCodeInvalidReceipt)
}
