package controllers

import (
	"net/http"

	"backoffice-service/models"
	"backoffice-service/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (ctl *UserController) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctl.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "User registered successfully", user)
}

func (ctl *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := ctl.users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

func (ctl *UserController) GetAll(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	role := c.Query("role")

	users, pagination, err := ctl.users.List(c.Request.Context(), page, limit, role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Users fetched successfully", users, pagination)
}

func (ctl *UserController) Get(c *gin.Context) {
	user, err := ctl.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "User fetched successfully", user)
}

func (ctl *UserController) Update(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctl.users.Update(c.Request.Context(), c.Param("username"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "User updated successfully", user)
}
