package controllers

import (
	"net/http"

	"backoffice-service/models"
	"backoffice-service/services"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

func (ctl *ContactController) Create(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contact, err := ctl.contacts.Create(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Contact created successfully", contact)
}

func (ctl *ContactController) Get(c *gin.Context) {
	contact, err := ctl.contacts.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Contact fetched successfully", contact)
}

func (ctl *ContactController) Update(c *gin.Context) {
	var patch models.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	contact, err := ctl.contacts.Update(c.Request.Context(), c.Param("username"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Contact updated successfully", contact)
}

func (ctl *ContactController) Delete(c *gin.Context) {
	if err := ctl.contacts.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Contact deleted successfully", nil)
}
