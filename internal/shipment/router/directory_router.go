package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
	"github.com/unknowncanwrite/ship/internal/shipment/service"
)

// DirectoryRouter serves the address book and notes.
type DirectoryRouter struct {
	contacts *service.ContactService
	notes    *service.NoteService
}

func NewDirectoryRouter(contacts *service.ContactService, notes *service.NoteService) *DirectoryRouter {
	return &DirectoryRouter{contacts: contacts, notes: notes}
}

func (dr *DirectoryRouter) Register(api *gin.RouterGroup) {
	contacts := api.Group("/contacts")
	{
		contacts.GET("", dr.HandleListContacts)
		contacts.POST("", dr.HandleCreateContact)
		contacts.PATCH("/:id", dr.HandleUpdateContact)
		contacts.DELETE("/:id", dr.HandleDeleteContact)
	}

	notes := api.Group("/notes")
	{
		notes.GET("", dr.HandleListNotes)
		notes.POST("", dr.HandleCreateNote)
		notes.PATCH("/:id", dr.HandleUpdateNote)
		notes.DELETE("/:id", dr.HandleDeleteNote)
	}
}

func (dr *DirectoryRouter) HandleListContacts(c *gin.Context) {
	contacts, err := dr.contacts.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (dr *DirectoryRouter) HandleCreateContact(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	contact, err := dr.contacts.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (dr *DirectoryRouter) HandleUpdateContact(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	contact, err := dr.contacts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (dr *DirectoryRouter) HandleDeleteContact(c *gin.Context) {
	if err := dr.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (dr *DirectoryRouter) HandleListNotes(c *gin.Context) {
	notes, err := dr.notes.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (dr *DirectoryRouter) HandleCreateNote(c *gin.Context) {
	var req model.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	note, err := dr.notes.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (dr *DirectoryRouter) HandleUpdateNote(c *gin.Context) {
	var req model.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	note, err := dr.notes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (dr *DirectoryRouter) HandleDeleteNote(c *gin.Context) {
	if err := dr.notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
