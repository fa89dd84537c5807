package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	dto "wheel_backend/internal/api/dto/admin"
	"wheel_backend/internal/api/middleware"
	"wheel_backend/internal/converter"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"
	adminserv "wheel_backend/internal/service/admin"
	"wheel_backend/pkg/req"
	"wheel_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
)

const adminTokenCookie = "admin_token"

type HandlerDeps struct {
	Serv     service.AdminService
	SpinServ service.SpinService
}

type Handler struct {
	serv     service.AdminService
	spinServ service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:     deps.Serv,
		spinServ: deps.SpinServ,
	}
}

// Login проверяет пароль администратора
// и возвращает access токен через cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	accessToken, err := h.serv.Login(r.Context(), requestBody.Username, requestBody.Password)
	if err != nil {
		if errors.Is(err, adminserv.ErrInvalidCredentials) {
			resp.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Println("Login error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	setAdminTokenCookie(w, accessToken)

	w.WriteHeader(http.StatusOK)
}

// Logout удаляет cookie с access токеном
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	deleteAdminTokenCookie(w)

	w.WriteHeader(http.StatusNoContent)
}

// Manage возвращает сводку админской панели
func (h *Handler) Manage(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.ManageData(r.Context())
	if err != nil {
		log.Println("Manage error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToManageResponse(*data))
}

// AddPrize добавляет позицию инвентаря
func (h *Handler) AddPrize(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.AddPrizeRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.AddPrize(r.Context(), requestBody.Amount, requestBody.Quantity)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.AddPrizeResponse{ID: id})
}

// DeletePrize удаляет позицию инвентаря
func (h *Handler) DeletePrize(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid prize id")
		return
	}

	if err := h.serv.DeletePrize(r.Context(), id); err != nil {
		log.Println("DeletePrize error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddUser добавляет участника от имени администратора
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.AddUserRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.AddUser(r.Context(), requestBody.Name)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			resp.WriteError(w, http.StatusConflict, "name already registered")
			return
		}
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.AddUserResponse{ID: id})
}

// DeleteUser удаляет участника
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.serv.DeleteUser(r.Context(), id); err != nil {
		log.Println("DeleteUser error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset выполняет массовый сброс через движок колеса
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.spinServ.Reset(r.Context()); err != nil {
		log.Println("Reset error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword меняет пароль текущего администратора
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestBody, err := req.Decode[dto.ChangePasswordRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.ChangePassword(r.Context(), username, requestBody.Password); err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV отдает историю выигрышей CSV файлом
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("wheel_winners_%s.csv", time.Now().Format("20060102_150405"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := h.serv.ExportWinnersCSV(r.Context(), w); err != nil {
		// Заголовки уже ушли, остаётся залогировать
		log.Println("ExportCSV error:", err)
	}
}

// setAdminTokenCookie устанавливает cookie с access токеном
func setAdminTokenCookie(w http.ResponseWriter, accessToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminTokenCookie,
		Value:    accessToken,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   60 * 60 * 24, // Сутки, как и срок жизни токена
	})
}

// deleteAdminTokenCookie удаляет cookie с access токеном
func deleteAdminTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminTokenCookie,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
