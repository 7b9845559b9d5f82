package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/services"
)

// DataHandler handles bulk data requests: export and full wipe.
type DataHandler struct {
	dataService services.DataServicer
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(dataService services.DataServicer) *DataHandler {
	return &DataHandler{dataService: dataService}
}

// ExportTransactions streams the user's transactions as a CSV download
// @Summary     Export transactions as CSV
// @Tags        data
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /data/export [get]
func (h *DataHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.dataService.ExportTransactionsCSV(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("transaction_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ClearUserData permanently deletes all of the user's financial data
// @Summary     Clear all data
// @Description Permanently deletes every transaction, budget, account,
// @Description category, and setting belonging to the user.
// @Tags        data
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Cleared"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /data [delete]
func (h *DataHandler) ClearUserData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.dataService.ClearUserData(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
