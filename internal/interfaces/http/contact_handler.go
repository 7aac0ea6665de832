package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
)

// ContactMailer puerto del correo de contacto.
type ContactMailer interface {
	SendContact(name, email, message string) error
}

// ContactHandler maneja el formulario público de contacto.
type ContactHandler struct {
	mailer ContactMailer // nil deshabilita el envío (se registra y descarta)
}

// NewContactHandler construye el handler de contacto.
func NewContactHandler(mailer ContactMailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// Submit godoc
// @Summary      Enviar mensaje de contacto (público)
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "name, email, message"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email y message son requeridos"})
	}
	if h.mailer != nil {
		if err := h.mailer.SendContact(in.Name, in.Email, in.Message); err != nil {
			log.Warn().Err(err).Msg("no se pudo enviar el correo de contacto")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "MAIL_FAILED", Message: "no se pudo enviar el mensaje"})
		}
	} else {
		log.Info().Str("email", in.Email).Msg("contacto recibido (SMTP deshabilitado)")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "mensaje recibido"})
}
