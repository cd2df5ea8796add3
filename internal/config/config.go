package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Path        string `mapstructure:"path"`
	Output      string `mapstructure:"output"`
	Format      string `mapstructure:"format"`
	TTSCommand  string `mapstructure:"tts_command"`
	Shell       string `mapstructure:"shell"`
	CacheSize   int    `mapstructure:"cache_size"`
	LogLevel    string `mapstructure:"log_level"`
	OnlyValid   bool   `mapstructure:"only_valid"`
	ColorHeader string `mapstructure:"color_header"`
	ColorSpeech string `mapstructure:"color_speech"`
	ColorError  string `mapstructure:"color_error"`
	ColorDim    string `mapstructure:"color_dim"`
	ColorBorder string `mapstructure:"color_border"`
}

// C is the global config instance
var C Config

// SetDefaults registers default values for every key
func SetDefaults() {
	viper.SetDefault("path", ".")
	viper.SetDefault("output", "print")  // print, copy, speak
	viper.SetDefault("format", "speech") // speech, markup, tree
	viper.SetDefault("tts_command", "")  // empty: autodetect
	viper.SetDefault("shell", getDefaultShell())
	viper.SetDefault("cache_size", 256)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("only_valid", false)
	viper.SetDefault("color_header", "36") // Cyan
	viper.SetDefault("color_speech", "32") // Green
	viper.SetDefault("color_error", "31")  // Red
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("color_border", "240")
}

// Init initializes configuration with viper
func Init() error {
	SetDefaults()

	viper.SetConfigName("ssmlkit")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "ssmlkit"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SSMLKIT")
	viper.AutomaticEnv()

	// Missing or malformed config files fall back to defaults
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPath returns the document path with tilde expansion
func GetPath() string {
	return expandTilde(viper.GetString("path"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetFormat returns the rendering format
func GetFormat() string {
	return viper.GetString("format")
}

// GetTTSCommand returns the configured text-to-speech command
func GetTTSCommand() string {
	return viper.GetString("tts_command")
}

// GetShell returns the shell used to run the TTS command
func GetShell() string {
	return viper.GetString("shell")
}

// GetCacheSize returns the parse cache capacity
func GetCacheSize() int {
	return viper.GetInt("cache_size")
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// GetOnlyValid returns whether the browser hides documents that fail to parse
func GetOnlyValid() bool {
	return viper.GetBool("only_valid")
}

func GetColorHeader() string { return viper.GetString("color_header") }
func GetColorSpeech() string { return viper.GetString("color_speech") }
func GetColorError() string  { return viper.GetString("color_error") }
func GetColorDim() string    { return viper.GetString("color_dim") }
func GetColorBorder() string { return viper.GetString("color_border") }

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetFormat sets the rendering format at runtime
func SetFormat(format string) {
	viper.Set("format", format)
	C.Format = format
}

// SetPath sets path at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.Path = path
}

func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
