package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Retaguarda  Retaguarda  `mapstructure:",squash"`
	Checkout    Checkout    `mapstructure:",squash"`
	Search      Search      `mapstructure:",squash"`
	CatalogSync CatalogSync `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Retaguarda é a API REST do ERP da farmácia (catálogo, clientes, filiais,
// promoções, estoque e emissão de vendas)
type Retaguarda struct {
	URL            string `mapstructure:"retaguarda_url"`
	AccessToken    string `mapstructure:"retaguarda_access_token"`
	TimeoutSeconds int    `mapstructure:"retaguarda_timeout_seconds"`
}

type Checkout struct {
	// Timeout da submissão do pedido; estourado, o checkout vira falha de rede
	TimeoutSeconds int `mapstructure:"checkout_timeout_seconds"`
}

type Search struct {
	DebounceMillis int `mapstructure:"search_debounce_millis"`
}

type CatalogSync struct {
	CronSchedule string `mapstructure:"catalog_sync_cron"`
	Enabled      bool   `mapstructure:"catalog_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/barateira")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("RETAGUARDA_URL", "https://api.farmaciabarateira.com.br/api")
	viper.SetDefault("RETAGUARDA_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("RETAGUARDA_TIMEOUT_SECONDS", 30)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("CHECKOUT_TIMEOUT_SECONDS", 10) // Recomendado pela retaguarda
	viper.SetDefault("SEARCH_DEBOUNCE_MILLIS", 300)  // Janela de inatividade da busca

	// Defaults para sincronização do cache de catálogo
	viper.SetDefault("CATALOG_SYNC_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("CATALOG_SYNC_ENABLED", false)      // Habilitar sincronização do catálogo

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
