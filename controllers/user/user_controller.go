package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/configs"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	users    store.UserStore
	validate *validator.Validate
}

func NewHandler(users store.UserStore) *Handler {
	return &Handler{
		users:    users,
		validate: validator.New(),
	}
}

type registerRequest struct {
	UserName        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=customer farmer"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody registerRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return badRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(reqBody); err != nil {
		return badRequest(c, "Please fill all fields with valid values")
	}
	if reqBody.Password != reqBody.ConfirmPassword {
		return badRequest(c, "Passwords do not match")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		return serverError(c, "Error hashing password")
	}

	role := reqBody.Role
	if role == "" {
		role = models.RoleCustomer
	}

	newUser := models.User{
		UserName:  reqBody.UserName,
		Email:     reqBody.Email,
		Password:  string(hashedPassword),
		Role:      role,
		Cart:      []models.CartItem{},
		Wishlist:  []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}

	if err := h.users.InsertUser(ctx, &newUser); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return badRequest(c, "User with same email already exists")
		}
		return serverError(c, "Error in saving user, please try again later")
	}

	newUser.Password = ""
	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Success: true,
		Message: "User created successfully",
		Result:  &fiber.Map{"user": newUser},
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody loginRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return badRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(reqBody); err != nil {
		return badRequest(c, "Email and password are required")
	}

	user, err := h.users.GetUserByEmail(ctx, reqBody.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return badRequest(c, "User with this account does not exist")
		}
		return serverError(c, "Error fetching from database")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqBody.Password)) != nil {
		return badRequest(c, "Incorrect password")
	}

	token, err := createJwt(user.Id.Hex(), user.Role)
	if err != nil {
		return serverError(c, "Error while generating jwt token")
	}

	user.Password = ""
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "User signed in successfully",
		Result: &fiber.Map{
			"user":  user,
			"token": token,
		},
	})
}

func createJwt(userId, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userId,
		"role": role,
		"exp":  time.Now().Add(time.Hour * 720).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.EnvJwtSecret()))
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, errResp := localUserID(c)
	if errResp != nil {
		return errResp(c)
	}

	user, err := h.users.GetUser(ctx, userObjectID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, "Error fetching user data")
	}

	user.Password = ""
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Profile fetched successfully",
		Result:  &fiber.Map{"user": user},
	})
}

type profileUpdateRequest struct {
	UserName string `json:"username"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	ImageUrl string `json:"profileImage"`
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, errResp := localUserID(c)
	if errResp != nil {
		return errResp(c)
	}

	var reqBody profileUpdateRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return badRequest(c, "Invalid request format")
	}

	update := store.ProfileUpdate{
		UserName: reqBody.UserName,
		Phone:    reqBody.Phone,
		Address:  reqBody.Address,
		ImageUrl: reqBody.ImageUrl,
	}

	if err := h.users.UpdateProfile(ctx, userObjectID, update); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		return serverError(c, "Error updating user profile")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Profile updated successfully",
	})
}

// localUserID reads the ObjectID the auth middleware stored in Locals. The
// second return is a ready error responder when the id is absent or bad.
func localUserID(c *fiber.Ctx) (primitive.ObjectID, func(*fiber.Ctx) error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "User ID not found in token",
			})
		}
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid user ID format",
			})
		}
	}

	return userObjectID, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
		Status:  fiber.StatusNotFound,
		Message: message,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
		Status:  fiber.StatusInternalServerError,
		Message: message,
	})
}
