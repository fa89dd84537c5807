package spin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	dto "wheel_backend/internal/api/dto/spin"
	"wheel_backend/internal/converter"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"
	spinserv "wheel_backend/internal/service/spin"
	"wheel_backend/pkg/req"
	"wheel_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
)

const spinSessionCookie = "spin_session"

type HandlerDeps struct {
	Serv service.SpinService
}

type Handler struct {
	serv service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Register регистрирует нового участника
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.Register(r.Context(), requestBody.Name)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			resp.WriteError(w, http.StatusConflict, "name already registered")
			return
		}
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{ID: id})
}

// Board возвращает сводку главной страницы
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.Board(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBoardResponse(*data))
}

// Select привязывает участника к предстоящему спину
// и выдает cookie с session_id привязки
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	session, err := h.serv.SelectUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setSpinSessionCookie(w, session.ID)

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSelectResponse(*session))
}

// Wheel возвращает данные страницы колеса для привязанного участника
func (h *Handler) Wheel(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(spinSessionCookie)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "no user selected")
		return
	}

	data, err := h.serv.Wheel(r.Context(), c.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelResponse(*data))
}

// Spin разыгрывает приз для привязанного участника.
// Cookie привязки снимается при любом исходе
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(spinSessionCookie)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "no user selected")
		return
	}

	deleteSpinSessionCookie(w)

	result, err := h.serv.Spin(r.Context(), c.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// writeServiceError отображает ошибки движка в HTTP статусы.
// Внутренние ошибки наружу не просачиваются
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spinserv.ErrIneligible):
		resp.WriteError(w, http.StatusConflict, "user is not eligible for the wheel")
	case errors.Is(err, spinserv.ErrAlreadySpun):
		resp.WriteError(w, http.StatusConflict, "user has already spun")
	case errors.Is(err, spinserv.ErrNoPrizesLeft):
		resp.WriteError(w, http.StatusConflict, "no prizes left")
	case errors.Is(err, spinserv.ErrNoSession):
		resp.WriteError(w, http.StatusBadRequest, "no user selected")
	default:
		log.Println("spin api error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// setSpinSessionCookie устанавливает cookie с привязкой к спину
func setSpinSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     spinSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   60 * 60, // 1 час
	})
}

// deleteSpinSessionCookie удаляет cookie привязки
func deleteSpinSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     spinSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
