package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"QHSEAssistant/internal/ai"
	"QHSEAssistant/internal/config"
	"QHSEAssistant/internal/service/ingest"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Одноразовая административная утилита: создаёт векторное хранилище,
// загружает документ QHSSE и привязывает его. Выведенный VECTOR_STORE_ID
// копируется в переменные окружения сервера.
func main() {
	name := flag.String("name", "QHSSE_TOTAL", "имя векторного хранилища")
	file := flag.String("file", "document_QHSSE.pdf", "путь к документу")
	cfg := config.NewConfig() // вызывает flag.Parse

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	if cfg.OpenAIAPIKey == "" {
		sugar.Errorw("OPENAI_API_KEY manquante")
		os.Exit(1)
	}

	oClient := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	client := ai.NewOpenAIClient(&oClient, cfg.AssistantID, "")
	helper := ingest.New(client, sugar)

	storeID, err := helper.Run(context.Background(), *name, *file)
	if err != nil {
		sugar.Errorw("Ингестия не удалась", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nVECTOR_STORE_ID = %s\n", storeID)
	fmt.Println("Copie cette valeur dans les variables d'environnement du serveur.")
}
