package http

import (
	"encoding/xml"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aidassist/healthqa/internal/domain/chat"
	"github.com/aidassist/healthqa/internal/domain/language"
)

// langCommand matches messages like "lang: hindi" or "language = hi".
var langCommand = regexp.MustCompile(`^\s*(?i:lang|language)\s*[:=]\s*(.+)$`)

type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Message twimlMessage `xml:"Message"`
}

type twimlMessage struct {
	Body string `xml:"Body"`
}

// WhatsApp handles inbound Twilio webhook form posts. Twilio expects a
// TwiML document with status 200 regardless of the outcome, so errors
// become apologetic message bodies instead of HTTP failures.
func (h *ChatHandler) WhatsApp(c *gin.Context) {
	body := strings.TrimSpace(c.PostForm("Body"))
	sender := strings.TrimSpace(c.PostForm("From"))
	ctx := c.Request.Context()

	if match := langCommand.FindStringSubmatch(body); match != nil {
		code, err := h.chatSvc.SetLanguage(ctx, sender, match[1])
		if err != nil {
			h.logger.Warn("whatsapp language change failed", "sender", sender, "error", err)
			h.replyTwiML(c, "Sorry, I couldn't change your language. Please try again.")
			return
		}
		h.replyTwiML(c, "Language set to "+language.Name(code)+".")
		return
	}

	lang := h.chatSvc.LanguageFor(ctx, sender)
	resp, err := h.chatSvc.Ask(ctx, chat.Request{Message: body, Language: lang})
	if err != nil {
		h.logger.Error("whatsapp chat failed", "sender", sender, "error", err)
		h.replyTwiML(c, "Sorry, something went wrong. Please try again later.")
		return
	}
	h.replyTwiML(c, resp.Answer)
}

func (h *ChatHandler) replyTwiML(c *gin.Context, message string) {
	payload, err := xml.Marshal(twimlResponse{Message: twimlMessage{Body: message}})
	if err != nil {
		h.logger.Error("twiml marshal failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml", append([]byte(xml.Header), payload...))
}
