package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultTokenTTL 令牌默认有效期（7 天）
const defaultTokenTTL = 168 * time.Hour

// Load 加载配置
// 1. 加载 .env.{env}（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 环境变量覆盖，构建最终配置
func Load() *Config {
	// 先解析一次 APP_ENV 以确定加载哪个 .env 文件，
	// .env 中可能再次声明 APP_ENV，故加载后重新解析
	env := parseEnv(getEnv("APP_ENV", "dev"))
	loadEnvFiles(env)
	env = parseEnv(getEnv("APP_ENV", string(env)))

	// 加载 YAML 配置
	yamlCfg := loadYAMLConfig(env)

	// 从环境变量获取敏感信息
	yamlCfg.Database.Password = firstEnv("MONGO_ROOT_PASSWORD", "MONGO_PASSWORD", "DB_PASSWORD")
	yamlCfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	// 环境变量覆盖连接地址
	mongoURI := getEnv("MONGO_URI", buildMongoURI(yamlCfg.Database))
	redisURL := getEnv("REDIS_URL", buildRedisURL(yamlCfg.Redis))

	// 认证相关（密钥与引导账户只从环境变量读取）
	auth := yamlCfg.Auth
	auth.JWTSecret = os.Getenv("JWT_SECRET")
	auth.AdminEmail = os.Getenv("ADMIN_EMAIL")
	auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	// 构建最终配置
	cfg := &Config{
		Env:            env,
		MongoURI:       mongoURI,
		DatabaseName:   getEnv("MONGO_DB_NAME", yamlCfg.Database.Name),
		RedisURL:       redisURL,
		APIPort:        getEnv("API_PORT", yamlCfg.Server.Port),
		TokenTTL:       parseTokenTTL(auth.TokenTTL),
		Auth:           auth,
		ConfigFilePath: yamlCfg.loadedFrom,
	}

	return cfg
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → {env}.yaml
func loadYAMLConfig(env Environment) *yamlConfigInternal {
	// 1. 初始化默认值
	cfg := &yamlConfigInternal{
		YAMLConfig: YAMLConfig{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Host: "localhost", Port: 27017, Name: "hrm_admin"},
			Redis:    RedisConfig{Host: "localhost", Port: 6379, DB: 0},
			Auth:     AuthConfig{TokenTTL: "168h"},
		},
	}

	// 2. 加载 {env}.yaml
	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range effectiveConfigPaths() {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, &cfg.YAMLConfig)
			cfg.loadedFrom = path
			break
		}
	}

	return cfg
}

// parseTokenTTL 解析令牌有效期，非法值回退到默认值
func parseTokenTTL(s string) time.Duration {
	if s == "" {
		return defaultTokenTTL
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultTokenTTL
	}
	return d
}
