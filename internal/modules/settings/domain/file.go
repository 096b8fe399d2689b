package domain

// File mirrors the config file. Every group and key is optional; emoji
// fields are pointers so an explicit empty string disables the emoji.
type File struct {
	Durations    Durations    `yaml:"durations,omitempty" json:"durations,omitempty"`
	Emojis       Emojis       `yaml:"emojis,omitempty" json:"emojis,omitempty"`
	Sound        Sound        `yaml:"sound,omitempty" json:"sound,omitempty"`
	WorkingHours WorkingHours `yaml:"working_hours,omitempty" json:"working_hours,omitempty"`
	Notifier     Notifier     `yaml:"notifier,omitempty" json:"notifier,omitempty"`
	Store        Store        `yaml:"store,omitempty" json:"store,omitempty"`
	Log          Log          `yaml:"log,omitempty" json:"log,omitempty"`
}

type Durations struct {
	Focus string `yaml:"focus,omitempty" json:"focus,omitempty"`
	Break string `yaml:"break,omitempty" json:"break,omitempty"`
}

type Emojis struct {
	Focus *string  `yaml:"focus,omitempty" json:"focus,omitempty"`
	Break *string  `yaml:"break,omitempty" json:"break,omitempty"`
	Warn  []string `yaml:"warn,omitempty" json:"warn,omitempty"`
}

type Sound struct {
	Start string `yaml:"start,omitempty" json:"start,omitempty"`
	End   string `yaml:"end,omitempty" json:"end,omitempty"`
}

type WorkingHours struct {
	Start string `yaml:"start,omitempty" json:"start,omitempty"`
	End   string `yaml:"end,omitempty" json:"end,omitempty"`
}

type Notifier struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	Plugin  string `yaml:"plugin,omitempty" json:"plugin,omitempty"`
}

type Store struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
}

type Log struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty"`
}
