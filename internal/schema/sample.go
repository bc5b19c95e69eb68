package schema

// NewSample builds the starter document written by `deployctl new`.
func NewSample(name, organization string, database bool) *DeployConfig {
	cfg := newDeployConfig()
	cfg.Scaling = defaultScaling()
	cfg.Version = CurrentVersion
	cfg.Name = name
	cfg.Organization = organization
	cfg.DefaultRegion = DefaultRegion

	if database {
		cfg.Database = &Database{Postgres: defaultPostgres()}
	}

	hard, soft := uint64(25), uint64(20)
	interval, timeout := uint64(10000), uint64(2000)
	forceHTTPS := true
	protocol := ProtocolTCP
	checkProtocol := CheckHTTP

	cfg.Services = []Service{{
		InternalPort: 3000,
		Processes:    []string{"app"},
		Protocol:     &protocol,
		Concurrency:  Concurrency{HardLimit: &hard, SoftLimit: &soft, Type: "connections"},
		Ports: []ServicePort{
			{Port: 80, Handlers: []PortHandler{HandlerHTTP}},
			{Port: 443, ForceHTTPS: &forceHTTPS, Handlers: []PortHandler{HandlerTLS, HandlerHTTP}},
		},
		HTTPChecks: []HTTPCheck{{
			Interval:    &interval,
			GracePeriod: "5s",
			Method:      "get",
			Path:        "/api/health",
			Protocol:    &checkProtocol,
			Timeout:     &timeout,
		}},
	}}

	cfg.Environment = Environment{
		ScopeAll: {
			{Key: "PLAINTEXT_VALUE", Value: Literal("plaintext value")},
		},
		"{{environment}}": {
			{Key: "DEPLOY_ENVIRONMENT", Value: Literal("{{environment}}")},
		},
	}

	return &cfg
}
