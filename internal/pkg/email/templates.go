package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer turns domain data into ready-to-send subject/body
// pairs. Rendering is pure; nothing here touches SMTP.
type TemplateRenderer struct {
	templates   *template.Template
	frontendURL string
}

func NewTemplateRenderer(frontendURL string) (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &TemplateRenderer{
		templates:   tmpl,
		frontendURL: frontendURL,
	}, nil
}

type EmployeeWelcomeData struct {
	Name               string
	Email              string
	TempPassword       string
	EmployeeIdentifier string
	Role               string
	LoginURL           string
}

// RenderEmployeeWelcome is the admin-created-account welcome carrying
// the credentials block.
func (r *TemplateRenderer) RenderEmployeeWelcome(data EmployeeWelcomeData) (subject, html string, err error) {
	if data.LoginURL == "" {
		data.LoginURL = r.frontendURL + "/login"
	}
	html, err = r.render("welcome_employee.html", data)
	return "Welcome to the Employee Management System", html, err
}

type RegistrationWelcomeData struct {
	Name     string
	LoginURL string
}

// RenderRegistrationWelcome is the self-registration welcome; no
// credentials are echoed back.
func (r *TemplateRenderer) RenderRegistrationWelcome(data RegistrationWelcomeData) (subject, html string, err error) {
	if data.LoginURL == "" {
		data.LoginURL = r.frontendURL + "/login"
	}
	html, err = r.render("welcome_registration.html", data)
	return "Welcome to the Employee Management System", html, err
}

type PasswordResetData struct {
	Name      string
	ResetLink string
}

func (r *TemplateRenderer) RenderPasswordReset(name, resetToken string) (subject, html string, err error) {
	data := PasswordResetData{
		Name:      name,
		ResetLink: r.frontendURL + "/reset-password?token=" + resetToken,
	}
	html, err = r.render("password_reset.html", data)
	return "Password Reset Request", html, err
}

type AttendanceData struct {
	Name         string
	Date         string
	ClockIn      string
	ClockOut     string
	Status       string
	StatusColor  string
	WorkingHours string
}

var statusColors = map[string]string{
	"present": "#4CAF50",
	"late":    "#FF9800",
	"absent":  "#F44336",
	"leave":   "#2196F3",
}

func (r *TemplateRenderer) RenderAttendance(data AttendanceData) (subject, html string, err error) {
	if data.StatusColor == "" {
		data.StatusColor = statusColors[data.Status]
	}
	html, err = r.render("attendance.html", data)
	return fmt.Sprintf("Attendance Confirmation - %s", data.Date), html, err
}

func (r *TemplateRenderer) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := r.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return body.String(), nil
}
