package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fieldops/wa-attendance-bot/internal/data"
)

func main() {
	_ = godotenv.Load()

	accessToken := os.Getenv("WHATSAPP_ACCESS_TOKEN")
	phoneNumberID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")

	if accessToken == "" || phoneNumberID == "" {
		fmt.Println("Error: WHATSAPP_ACCESS_TOKEN and WHATSAPP_PHONE_NUMBER_ID must be set")
		os.Exit(1)
	}

	if len(os.Args) < 3 {
		fmt.Println("Usage: send-message <phone> <message>")
		os.Exit(1)
	}

	apiBase := os.Getenv("WHATSAPP_API_BASE")
	if apiBase == "" {
		apiBase = "https://graph.facebook.com/v19.0"
	}

	gateway := data.NewWhatsAppRepo(apiBase, accessToken, phoneNumberID)
	if err := gateway.SendText(context.Background(), os.Args[1], os.Args[2]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Message sent successfully!")
}
