package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса вопросов-ответов по документу QHSSE.
// Читается один раз при старте процесса; обработчики её не мутируют.
type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"` // Режим дебага (подробный лог)
	Addr      string `env:"ADDR"`       // Адрес HTTP-сервера, напр. :8080

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`  // Ключ удалённого сервиса; без него запросы невозможны
	AssistantID   string `env:"ASST_ID"`         // Идентификатор ассистента с инструментом file_search
	VectorStoreID string `env:"VECTOR_STORE_ID"` // Идентификатор векторного хранилища с документом QHSSE

	// Инструкция, добавляемая первым элементом каждого сообщения пользователя.
	// Фиксирует роль ассистента и политику «отвечать только по документу».
	InstructionPrompt string `env:"INSTRUCTION_PROMPT"`

	PollIntervalSeconds    int `env:"POLL_INTERVAL_SECONDS"`    // Интервал опроса статуса run
	RunDeadlineSeconds     int `env:"RUN_DEADLINE_SECONDS"`     // Дедлайн ожидания run (локальный, wall clock)
	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS"` // Таймаут graceful shutdown сервера
}

// MissingError обязательное поле конфигурации не задано.
// Текст совпадает с тем, что уходит клиенту в поле error.
type MissingError struct {
	Field string
}

func (e MissingError) Error() string { return fmt.Sprintf("%s manquante", e.Field) }

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		Addr:      ":8080",
		InstructionPrompt: "Tu es un assistant QHSE expert en sécurité sur chantier. " +
			"Réponds uniquement à partir du document indexé ; si l'information n'y figure pas, " +
			"réponds « Non précisé dans le document. ». " +
			"Réponds en 4 rubriques claires (sans bloc « source ») : " +
			"1) Risques ou dangers identifiés " +
			"2) EPI à porter " +
			"3) Documents et vérifications préalables " +
			"4) Bonnes pratiques de sécurité",
		// Фиксированный короткий интервал и дедлайн: интерактивный сценарий,
		// вызывающий сам ждёт ответа по HTTP. Без экспоненциального backoff.
		PollIntervalSeconds:    1,
		RunDeadlineSeconds:     30,
		ShutdownTimeoutSeconds: 5,
	}
}

// NewConfig загружает конфигурацию приложения: дефолты, затем .env/окружение, затем флаги.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага для подробного лога")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "адрес HTTP-сервера, напр. :8080")
	flag.StringVar(&cfg.AssistantID, "asst-id", cfg.AssistantID, "идентификатор ассистента (перекрывает ENV ASST_ID)")
	flag.StringVar(&cfg.VectorStoreID, "vector-store-id", cfg.VectorStoreID, "идентификатор векторного хранилища (перекрывает ENV VECTOR_STORE_ID)")
	flag.StringVar(&cfg.InstructionPrompt, "instruction-prompt", cfg.InstructionPrompt, "инструкция, добавляемая первым элементом каждого сообщения")
	flag.IntVar(&cfg.PollIntervalSeconds, "poll-interval-seconds", cfg.PollIntervalSeconds, "интервал опроса статуса run в секундах")
	flag.IntVar(&cfg.RunDeadlineSeconds, "run-deadline-seconds", cfg.RunDeadlineSeconds, "дедлайн ожидания run в секундах")
	flag.IntVar(&cfg.ShutdownTimeoutSeconds, "shutdown-timeout-seconds", cfg.ShutdownTimeoutSeconds, "таймаут graceful shutdown в секундах")
	flag.Parse()

	return cfg
}

// Validate проверяет обязательные поля. Возвращает первую отсутствующую
// по имени переменной окружения — порядок фиксирован ради детерминированных ошибок.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return MissingError{Field: "OPENAI_API_KEY"}
	}
	if c.AssistantID == "" {
		return MissingError{Field: "ASST_ID"}
	}
	if c.VectorStoreID == "" {
		return MissingError{Field: "VECTOR_STORE_ID"}
	}
	return nil
}

// PollInterval интервал опроса статуса run.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// RunDeadline локальный дедлайн ожидания run.
func (c *Config) RunDeadline() time.Duration {
	return time.Duration(c.RunDeadlineSeconds) * time.Second
}

// ShutdownTimeout таймаут graceful shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
