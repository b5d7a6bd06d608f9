package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api/middleware"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/auth"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user profile operations.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type addressRequest struct {
	Line1    string `json:"line1"    validate:"required"`
	Line2    string `json:"line2"`
	Line3    string `json:"line3"`
	Town     string `json:"town"     validate:"required"`
	County   string `json:"county"   validate:"required"`
	Postcode string `json:"postcode" validate:"required"`
}

type createUserRequest struct {
	Name        string         `json:"name"        validate:"required,min=2,max=100"`
	Email       string         `json:"email"       validate:"required,email"`
	Password    string         `json:"password"    validate:"required,min=8,max=100"`
	PhoneNumber string         `json:"phoneNumber" validate:"required,e164"`
	Address     addressRequest `json:"address"     validate:"required"`
}

type addressResponse struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
}

type userResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Address     addressResponse `json:"address"`
	CreatedAt   time.Time       `json:"createdTimestamp"`
	UpdatedAt   time.Time       `json:"updatedTimestamp"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address: addressResponse{
			Line1:    u.Address.Line1,
			Line2:    u.Address.Line2,
			Line3:    u.Address.Line3,
			Town:     u.Address.Town,
			County:   u.Address.County,
			Postcode: u.Address.Postcode,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Create registers a new user account. The route is anonymous; the created
// account then logs in through /v1/auth/login.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body is missing or malformed JSON.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address: ports.AddressInput{
			Line1:    req.Address.Line1,
			Line2:    req.Address.Line2,
			Line3:    req.Address.Line3,
			Town:     req.Address.Town,
			County:   req.Address.County,
			Postcode: req.Address.Postcode,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get returns a user profile. Callers may only read their own profile: a
// valid token for a different subject gets a 403 before any lookup happens.
//
// @Summary      Fetch a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id (e.g. usr-3f0e...)"
// @Success      200     {object}  userResponse
// @Failure      401     {object}  map[string]any
// @Failure      403     {object}  map[string]any
// @Failure      404     {object}  map[string]any
// @Router       /v1/users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	userID := c.Param("userId")

	if err := auth.RequireOwner(middleware.IdentityFrom(c), userID); err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
