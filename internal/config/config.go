// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"go_course_tracker/internal/model"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" または "postgres"
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// CourseSettings はコースのパラメータ (日付は "2006-01-02" 形式の文字列)
type CourseSettings struct {
	TotalHours         float64 `mapstructure:"total_hours"`
	HoursPerDay        float64 `mapstructure:"hours_per_day"`
	WorkingDaysPerWeek int     `mapstructure:"working_days_per_week"`
	AbsenceImpact      float64 `mapstructure:"absence_impact"`
	Start              string  `mapstructure:"start"`
	ProjectedEnd       string  `mapstructure:"projected_end"`
	CurrentYear        int     `mapstructure:"current_year"`
	TermStart          string  `mapstructure:"term_start"`
}

// AttendanceSettings はリセット時に戻す出席記録の基準値
type AttendanceSettings struct {
	BaselineFrequency   float64 `mapstructure:"baseline_frequency"`
	BaselineMissedHours float64 `mapstructure:"baseline_missed_hours"`
}

type StorageConfig struct {
	Key string `mapstructure:"key"`
}

type AppConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type Config struct {
	Server     ServerConfig       `mapstructure:"server"`
	Database   DatabaseConfig     `mapstructure:"database"`
	Log        LogConfig          `mapstructure:"log"`
	CORS       CORSConfig         `mapstructure:"cors"`
	Course     CourseSettings     `mapstructure:"course"`
	Attendance AttendanceSettings `mapstructure:"attendance"`
	Storage    StorageConfig      `mapstructure:"storage"`
	App        AppConfig          `mapstructure:"app"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL, APP_SERVER_PORT
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("database.url", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	cfg.ApplyDefaults()

	if _, err := cfg.CourseConfig(); err != nil {
		log.Printf("Invalid course settings: %s\n", err)
		return err
	}

	Cfg = cfg
	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Storage Key: %s", Cfg.Storage.Key)
	return nil
}

// ApplyDefaults は未設定の項目にデフォルト値を入れる
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultServerPort
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDatabaseDriver
	}
	if c.Database.URL == "" && c.Database.Driver == DefaultDatabaseDriver {
		c.Database.URL = DefaultSQLitePath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:8080"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "X-Request-Id"}
	}

	d := model.DefaultCourseConfig()
	if c.Course.TotalHours <= 0 {
		c.Course.TotalHours = d.TotalCourseHours
	}
	if c.Course.HoursPerDay <= 0 {
		c.Course.HoursPerDay = d.HoursPerDay
	}
	if c.Course.WorkingDaysPerWeek <= 0 {
		c.Course.WorkingDaysPerWeek = d.WorkingDaysPerWeek
	}
	if c.Course.AbsenceImpact <= 0 {
		c.Course.AbsenceImpact = d.AbsenceImpact
	}
	if c.Course.Start == "" {
		c.Course.Start = d.CourseStart.String()
	}
	if c.Course.ProjectedEnd == "" {
		c.Course.ProjectedEnd = d.ProjectedEnd.String()
	}
	if c.Course.CurrentYear <= 0 {
		c.Course.CurrentYear = d.CurrentYear
	}
	if c.Course.TermStart == "" {
		c.Course.TermStart = d.TermStart.String()
	}

	if c.Attendance.BaselineFrequency <= 0 {
		c.Attendance.BaselineFrequency = DefaultBaselineFrequency
	}
	if c.Attendance.BaselineMissedHours <= 0 {
		c.Attendance.BaselineMissedHours = DefaultBaselineMissedHours
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
}

// CourseConfig は設定値からドメインの CourseConfig を組み立てる
func (c Config) CourseConfig() (model.CourseConfig, error) {
	loc, err := c.Location()
	if err != nil {
		return model.CourseConfig{}, err
	}
	start, err := model.ParseDate(c.Course.Start, loc)
	if err != nil {
		return model.CourseConfig{}, fmt.Errorf("course.start: %w", err)
	}
	end, err := model.ParseDate(c.Course.ProjectedEnd, loc)
	if err != nil {
		return model.CourseConfig{}, fmt.Errorf("course.projected_end: %w", err)
	}
	term, err := model.ParseDate(c.Course.TermStart, loc)
	if err != nil {
		return model.CourseConfig{}, fmt.Errorf("course.term_start: %w", err)
	}
	return model.CourseConfig{
		TotalCourseHours:   c.Course.TotalHours,
		HoursPerDay:        c.Course.HoursPerDay,
		WorkingDaysPerWeek: c.Course.WorkingDaysPerWeek,
		AbsenceImpact:      c.Course.AbsenceImpact,
		CourseStart:        start,
		ProjectedEnd:       end,
		CurrentYear:        c.Course.CurrentYear,
		TermStart:          term,
	}, nil
}

// AttendanceBaseline はリセット時の出席記録を返す
func (c Config) AttendanceBaseline() model.AttendanceRecord {
	return model.NewAttendanceRecord(c.Attendance.BaselineFrequency, c.Attendance.BaselineMissedHours)
}

// Location は日付計算に使うタイムゾーン。未設定ならローカル
func (c Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app.timezone: %w", err)
	}
	return loc, nil
}
