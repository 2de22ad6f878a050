package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"schedula/models"
	"schedula/services/directory"
	"schedula/utils"
)

// DirectoryHandler exposes the administrative CRUD surface for companies,
// providers and services.
type DirectoryHandler struct {
	Service directory.Service
}

func (h *DirectoryHandler) CreateCompany(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.CreateCompany(c.Request.Context(), &company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *DirectoryHandler) GetCompany(c *gin.Context) {
	company, err := h.Service.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *DirectoryHandler) UpdateCompany(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	company.ID = c.Param("id")
	if err := h.Service.UpdateCompany(c.Request.Context(), &company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *DirectoryHandler) UpdateCompanyWorkingHours(c *gin.Context) {
	var hours []models.WorkingHour
	if err := c.ShouldBindJSON(&hours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.UpdateCompanyWorkingHours(c.Request.Context(), c.Param("id"), hours); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *DirectoryHandler) CreateProvider(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.CreateProvider(c.Request.Context(), &provider); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, provider)
}

func (h *DirectoryHandler) GetProvider(c *gin.Context) {
	provider, err := h.Service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *DirectoryHandler) UpdateProvider(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	provider.ID = c.Param("id")
	if err := h.Service.UpdateProvider(c.Request.Context(), &provider); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *DirectoryHandler) UpdateProviderWorkingHours(c *gin.Context) {
	var hours []models.WorkingHour
	if err := c.ShouldBindJSON(&hours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.UpdateProviderWorkingHours(c.Request.Context(), c.Param("id"), hours); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// IssueProviderToken mints a provider-role bearer token for the blocked-time
// endpoints. Sits behind the admin key like the rest of the directory surface.
func (h *DirectoryHandler) IssueProviderToken(c *gin.Context) {
	provider, err := h.Service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	const validity = 24 * time.Hour
	token, err := utils.GenerateToken(provider.ID, "provider", validity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(validity.Seconds()),
	})
}

func (h *DirectoryHandler) DeleteProvider(c *gin.Context) {
	if err := h.Service.DeleteProvider(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *DirectoryHandler) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.CreateService(c.Request.Context(), &svc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *DirectoryHandler) GetService(c *gin.Context) {
	svc, err := h.Service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *DirectoryHandler) GetCompanyServices(c *gin.Context) {
	services, err := h.Service.GetCompanyServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *DirectoryHandler) UpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	svc.ID = c.Param("id")
	if err := h.Service.UpdateService(c.Request.Context(), &svc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *DirectoryHandler) DeleteService(c *gin.Context) {
	if err := h.Service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
