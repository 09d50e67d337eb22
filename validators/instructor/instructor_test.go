package instructorValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneSocialLinks(t *testing.T) {
	form := &InstructorForm{
		SocialLinks: map[string]string{
			"linkedin": "https://linkedin.com/in/ada",
			"twitter":  "",
			"github":   "   ",
			"website":  "https://ada.dev",
		},
	}

	form.PruneSocialLinks()

	assert.Equal(t, map[string]string{
		"linkedin": "https://linkedin.com/in/ada",
		"website":  "https://ada.dev",
	}, form.SocialLinks)
}

func TestCreateInstructorKeepsProfileImageURL(t *testing.T) {
	app := fiber.New()

	var got *InstructorForm
	app.Post("/", CreateInstructor(), func(c *fiber.Ctx) error {
		got = c.Locals("validatedInstructor").(*InstructorForm)
		return c.SendStatus(fiber.StatusOK)
	})

	body := `{"name":"Ada Lovelace","email":"ada@example.com","profile_image_url":"/uploads/instructor-images/ada.png"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, got)
	assert.Equal(t, "/uploads/instructor-images/ada.png", got.ProfileImageURL)
}
