package foreman

// Config holds connection parameters for the Foreman API.
type Config struct {
	// Host is the hostname or IP address of the Foreman system.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port of the Foreman API.
	Port int `mapstructure:"port" default:"443"`
	// Username is the user to authenticate on Foreman.
	Username string `mapstructure:"username" default:""`
	// Password is the password to authenticate the user on Foreman.
	Password string `mapstructure:"password" default:""`
	// UseSSL indicates whether to use HTTPS when connecting to the API.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
