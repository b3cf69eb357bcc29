package telegram

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"dressaiapi/models"
)

var usernames string = os.Getenv("TG_ADMINS") //separated by comma from env

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

// NotifyLowRating alerts the ops channel when a user rates a generated
// outfit 1 or 2. Fire and forget, errors only get logged.
func NotifyLowRating(userID uint, occasion string, rating int, itemIDs []string) {
	token := os.Getenv("TG_TOKEN")
	chatIDRaw := os.Getenv("TG_ALERT_CHAT_ID")
	if token == "" || chatIDRaw == "" {
		return
	}
	chatID, err := strconv.ParseInt(chatIDRaw, 10, 64)
	if err != nil {
		log.Println("Invalid TG_ALERT_CHAT_ID", err)
		return
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Println("Error tg bot init", err)
		return
	}
	text := fmt.Sprintf("Low outfit rating: user %v gave %v stars for %s (items %s)",
		userID, rating, EscapeMessage(occasion), strings.Join(itemIDs, ", "))
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		log.Println("Error sending low rating alert", err)
	}
}

// RunOpsBot answers simple admin queries about ratings and wardrobe volume.
func RunOpsBot(e *echo.Echo, db *gorm.DB) {

	if usernames == "" {
		usernames = "formality8765"
	}
	bot, err := tgbotapi.NewBotAPI(os.Getenv("TG_TOKEN"))
	if err != nil {
		println("Error tg bot init")
		log.Panic(err)
	}
	bot.Debug = true

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	admins := strings.Split(usernames, ",")

	for update := range updates {
		if update.Message == nil {
			continue
		}
		fromChat := update.FromChat()
		if fromChat == nil || !contains(admins, fromChat.UserName) {
			log.Printf("Ignoring message from unknown user %v", update.Message.From)
			continue
		}
		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
		switch update.Message.Command() {
		case "start":
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Commands: /stats for totals, /ratings for the latest outfit ratings.")
			bot.Send(msg)
		case "stats":
			var userCount, itemCount, ratingCount int64
			db.Model(&models.UserAccount{}).Count(&userCount)
			db.Model(&models.WardrobeItem{}).Count(&itemCount)
			db.Model(&models.OutfitRatingEvent{}).Count(&ratingCount)
			msg := tgbotapi.NewMessage(update.Message.Chat.ID,
				fmt.Sprintf("Users: %v\nWardrobe items: %v\nOutfit ratings: %v", userCount, itemCount, ratingCount))
			bot.Send(msg)
		case "ratings":
			var events []models.OutfitRatingEvent
			db.Order("id desc").Limit(10).Find(&events)
			description := strings.Builder{}
			description.WriteString("Latest ratings:\n```\n")
			for _, event := range events {
				description.WriteString(fmt.Sprintf("%v* %s user:%v %s\n",
					event.Rating, event.Occasion, event.UserAccountID, event.CreatedAt.Format("2006-01-02")))
			}
			description.WriteString("```")
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, description.String())
			msg.ParseMode = "markdown"
			bot.Send(msg)
		default:
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command, try /stats or /ratings.")
			bot.Send(msg)
		}
	}
}

func contains(items []string, lookFor string) bool {
	for _, item := range items {
		if item == lookFor {
			return true
		}
	}
	return false
}
