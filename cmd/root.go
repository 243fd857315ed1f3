package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/qualification"
)

const (
	app = "job-matcher"
)

type Config struct {
	// Qualifications overrides the built-in vocabulary, lowest level first.
	Qualifications     []string `mapstructure:"qualifications"`
	JobsFile           string   `mapstructure:"jobs-file"`
	CandidatesFile     string   `mapstructure:"candidates-file"`
	Workers            int      `mapstructure:"workers"`
	Output             string   `mapstructure:"output"`
	// ExcludeDepartments drops postings of these departments right after loading.
	ExcludeDepartments []string `mapstructure:"exclude-departments"`
}

// Levels returns the configured vocabulary or the built-in one.
func (c *Config) Levels() (*qualification.Levels, error) {
	if c == nil || len(c.Qualifications) == 0 {
		return qualification.Default(), nil
	}
	levels, err := qualification.New(c.Qualifications...)
	if err != nil {
		return nil, fmt.Errorf("qualifications: %w", err)
	}
	return levels, nil
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-matcher scores candidates against job postings and recommends open jobs",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"jobs-file":       "JOB_MATCHER_JOBS_FILE",
		"candidates-file": "JOB_MATCHER_CANDIDATES_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("jobs-file", "", "json or yaml file with job postings")
	rootCmd.PersistentFlags().String("candidates-file", "", "json or yaml file with candidate profiles")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("jobs-file", rootCmd.PersistentFlags().Lookup("jobs-file"))
	viper.BindPFlag("candidates-file", rootCmd.PersistentFlags().Lookup("candidates-file"))
}

func initConfig() {
	// The version command works without any configuration.
	if versionCmd.CalledAs() != "" {
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// Flags and environment are enough without a config file, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// session holds everything a command needs after configuration is resolved.
type session struct {
	config     *Config
	logger     *zap.Logger
	levels     *qualification.Levels
	jobs       *profile.Jobs
	candidates *profile.Candidates
}

func newSession(config *Config, l *zap.Logger) (*session, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	levels, err := config.Levels()
	if err != nil {
		return nil, err
	}

	s := &session{config: config, logger: logger.OrNop(l), levels: levels}

	if strings.TrimSpace(config.JobsFile) == "" {
		return nil, errors.New("jobs file is not configured (set jobs-file or JOB_MATCHER_JOBS_FILE)")
	}
	if s.jobs, err = profile.LoadJobs(config.JobsFile); err != nil {
		return nil, fmt.Errorf("loading jobs: %w", err)
	}

	if strings.TrimSpace(config.CandidatesFile) == "" {
		return nil, errors.New("candidates file is not configured (set candidates-file or JOB_MATCHER_CANDIDATES_FILE)")
	}
	if s.candidates, err = profile.LoadCandidates(config.CandidatesFile); err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	if len(config.ExcludeDepartments) > 0 {
		excluded := s.jobs.Exclude(profile.JobDepartmentField, config.ExcludeDepartments)
		s.logger.Info("excluding jobs by department",
			zap.Strings("departments", config.ExcludeDepartments),
			zap.Strings("excluded_jobs", excluded),
		)
	}

	s.logger.Debug("data loaded",
		zap.Int("jobs", s.jobs.Len()),
		zap.Int("active_jobs", s.jobs.Active().Len()),
		zap.Int("candidates", s.candidates.Len()),
		zap.Int("qualification_levels", levels.Len()),
	)

	return s, nil
}

func mustSession(l *zap.Logger) *session {
	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	s, err := newSession(config, l)
	if err != nil {
		l.Fatal("preparing data", zap.Error(err))
	}
	return s
}
