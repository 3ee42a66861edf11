package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Discord  Discord  `koanf:"discord"`
	Calendar Calendar `koanf:"calendar"`
	Reminder Reminder `koanf:"reminder"`
	Status   Status   `koanf:"status"`
}

type Discord struct {
	Token             string `koanf:"token"`
	GuildId           string `koanf:"guildid"`
	ReminderChannelId string `koanf:"reminderchannelid"`
	CommandPrefix     string `koanf:"commandprefix"`
}

type Calendar struct {
	CalendarId      string `koanf:"calendarid"`
	CredentialsFile string `koanf:"credentialsfile"`
	TokenFile       string `koanf:"tokenfile"`
	Timezone        string `koanf:"timezone"`
}

type Reminder struct {
	EndSoonDays   int `koanf:"endsoondays"`
	StartSoonDays int `koanf:"startsoondays"`
	Hour          int `koanf:"hour"`
	Minute        int `koanf:"minute"`
	FetchLimit    int `koanf:"fetchlimit"`
}

type Status struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// ConfigError marks a required setting that is missing at startup.
// It is fatal: the process refuses to start rather than retry.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Field)
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Discord: Discord{
			CommandPrefix: "!",
		},
		Calendar: Calendar{
			CredentialsFile: "credentials/calendar_credentials.json",
			TokenFile:       "credentials/calendar_token.json",
			Timezone:        "Europe/Prague",
		},
		Reminder: Reminder{
			EndSoonDays:   2,
			StartSoonDays: 2,
			Hour:          9,
			Minute:        50,
			FetchLimit:    10,
		},
		Status: Status{
			Enabled: false,
			Addr:    ":8181",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "BUBLA_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "BUBLA_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate checks the settings the bot cannot run without. The import
// CLI skips it and checks only the calendar section.
func (a Application) Validate() error {
	switch {
	case a.Discord.Token == "":
		return &ConfigError{Field: "discord.token"}
	case a.Discord.GuildId == "":
		return &ConfigError{Field: "discord.guildid"}
	case a.Discord.ReminderChannelId == "":
		return &ConfigError{Field: "discord.reminderchannelid"}
	case a.Calendar.CalendarId == "":
		return &ConfigError{Field: "calendar.calendarid"}
	}
	if a.Reminder.Hour < 0 || a.Reminder.Hour > 23 {
		return &ConfigError{Field: "reminder.hour"}
	}
	if a.Reminder.Minute < 0 || a.Reminder.Minute > 59 {
		return &ConfigError{Field: "reminder.minute"}
	}
	return nil
}
