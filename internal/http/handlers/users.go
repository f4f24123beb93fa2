package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/accounts"
	log "github.com/sirupsen/logrus"
)

// UserHandler implements the admin-only account management pages.
type UserHandler struct {
	accounts *accounts.Store
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(store *accounts.Store) *UserHandler {
	return &UserHandler{accounts: store}
}

// List renders the user table. With ?edit=ID the form preloads that account;
// an unknown ID silently falls back to the plain list. ?q= filters the table
// by username substring.
func (h *UserHandler) List(c *gin.Context) {
	filter := strings.TrimSpace(c.Query("q"))
	users, errList := h.accounts.List(c.Request.Context(), filter)
	if errList != nil {
		log.WithError(errList).Error("list users")
		c.String(http.StatusInternalServerError, "Database error.")
		return
	}

	data := gin.H{
		"title":  "Manage Users",
		"users":  users,
		"mode":   "create",
		"filter": filter,
	}

	if editQ := strings.TrimSpace(c.Query("edit")); editQ != "" {
		editID, errParse := strconv.ParseUint(editQ, 10, 64)
		if errParse != nil {
			c.Redirect(http.StatusFound, "/admin/users")
			return
		}
		userToEdit, errGet := h.accounts.Get(c.Request.Context(), editID)
		if errGet != nil {
			if errors.Is(errGet, accounts.ErrNotFound) {
				c.Redirect(http.StatusFound, "/admin/users")
				return
			}
			log.WithError(errGet).Error("read user")
			c.String(http.StatusInternalServerError, "Database error.")
			return
		}
		data["mode"] = "edit"
		data["userToEdit"] = userToEdit
	}

	c.HTML(http.StatusOK, "admin-users.html", viewData(c, data))
}

// Create adds a new account and redirects back to the list.
func (h *UserHandler) Create(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, errCreate := h.accounts.Create(c.Request.Context(), username, password)
	if errCreate != nil {
		switch {
		case errors.Is(errCreate, accounts.ErrInvalidInput):
			c.String(http.StatusBadRequest, "Username and password are required.")
		case errors.Is(errCreate, accounts.ErrDuplicateUsername):
			c.String(http.StatusBadRequest, "Username is already taken.")
		default:
			log.WithError(errCreate).Error("create user")
			c.String(http.StatusInternalServerError, "Database error.")
		}
		return
	}

	c.Redirect(http.StatusFound, "/admin/users")
}

// Update renames an account, optionally replacing its password, and
// redirects back to the list. A vanished account is not an error.
func (h *UserHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}
	username := c.PostForm("username")
	if strings.TrimSpace(username) == "" {
		c.String(http.StatusBadRequest, "Username is required.")
		return
	}

	errUpdate := h.accounts.Update(c.Request.Context(), id, username, c.PostForm("password"))
	if errUpdate != nil && !errors.Is(errUpdate, accounts.ErrNotFound) {
		log.WithError(errUpdate).Error("update user")
		c.String(http.StatusInternalServerError, "Database error.")
		return
	}

	c.Redirect(http.StatusFound, "/admin/users")
}

// Delete removes an account and redirects back to the list. Deleting an
// absent account still lands on the list without an error.
func (h *UserHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	errDelete := h.accounts.Delete(c.Request.Context(), id)
	if errDelete != nil && !errors.Is(errDelete, accounts.ErrNotFound) {
		log.WithError(errDelete).Error("delete user")
		c.String(http.StatusInternalServerError, "Database error.")
		return
	}

	c.Redirect(http.StatusFound, "/admin/users")
}
