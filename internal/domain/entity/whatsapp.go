package entity

import "errors"

// SendWhatsappMessage is the request body of the WhatsApp delivery service.
type SendWhatsappMessage struct {
	CompanyID   string  `json:"companyId" binding:"required"`
	AgentID     string  `json:"agentId" binding:"required"`
	PhoneNumber string  `json:"phoneNumber" binding:"required"`
	Message     Message `json:"message" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=text image"`
}

// Message can be a text or an image with caption
type Message struct {
	Text string `json:"text,omitempty"`

	Image   *ImageURL `json:"image,omitempty"`
	Caption string    `json:"caption,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Validate enforces that exactly one message shape is filled in.
func (m Message) Validate() error {
	if m.Text != "" && m.Image == nil {
		return nil
	}
	if m.Image != nil && m.Image.URL != "" && m.Text == "" {
		return nil
	}
	return errors.New("message must be either text or image type with required fields")
}
