// SPDX-License-Identifier: MIT

// Package api exposes the strength evaluator over HTTP: a submission form,
// a check endpoint, and the stored results.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"

	"pwd-strength/internal/store"
	"pwd-strength/pkg/strength"
)

type strengthApi struct {
	evaluator *strength.Evaluator
	results   store.Store
}

func (a *strengthApi) checkPassword(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := a.evaluator.Evaluate(c.Request.Context(), req.Username, req.Password, req.Email)

	persisted := false
	if a.results != nil {
		result := &store.Result{
			Username:  req.Username,
			Email:     req.Email,
			Entropy:   report.Entropy,
			CrackTime: report.CrackTime,
			Strength:  strings.ToLower(report.Classification.String()),
			Feedback:  report.Feedback(),
		}
		if err := a.results.SaveResult(c.Request.Context(), result); err != nil {
			// The evaluation stands on its own; a failed write only shows up
			// in the persisted flag.
			log.Error().Err(err).Msg("error saving evaluation result")
		} else {
			persisted = true
		}
	}

	entropy := zxcvbn.PasswordStrength(req.Password, []string{req.Username, req.Email})
	c.JSON(http.StatusOK, checkResponse{
		Score:          report.Score,
		Classification: report.Classification.String(),
		Messages:       report.Messages,
		Entropy:        report.Entropy,
		CrackTime:      report.CrackTime,
		Persisted:      persisted,
		Zxcvbn: &zxcvbnStrength{
			Score:            entropy.Score,
			CrackTimeDisplay: entropy.CrackTimeDisplay,
		},
	})
}

func (a *strengthApi) listResults(c *gin.Context) {
	if a.results == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	results, err := a.results.ListResults(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// RegisterStrengthApi mounts the check and results endpoints on the group.
// results may be nil when persistence is not configured; submissions still
// evaluate, they just are not stored.
func RegisterStrengthApi(group *gin.RouterGroup, evaluator *strength.Evaluator, results store.Store) {
	a := &strengthApi{evaluator: evaluator, results: results}

	group.POST("/password", a.checkPassword)
	group.GET("/results", a.listResults)
}
