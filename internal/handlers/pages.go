package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The dashboard routes render nothing themselves beyond the navigation
// chrome; the role guard on their group has already redirected anyone who
// doesn't belong here.

// GET /student/dashboard
func (h HandlerSet) StudentDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page": "student-dashboard",
		"navigation": []string{
			"resources",
			"comics",
			"voice-tutor",
			"assessments",
		},
	})
}

// GET /teacher/dashboard
func (h HandlerSet) TeacherDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page": "teacher-dashboard",
		"navigation": []string{
			"content-library",
			"image-generator",
			"comic-generator",
			"assessments",
		},
	})
}
