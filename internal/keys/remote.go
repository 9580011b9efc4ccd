package keys

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	commonv1 "github.com/astraios/auth-service/gen/go/common"
	"github.com/astraios/auth-service/internal/config"
	"github.com/astraios/auth-service/internal/pkg/log"

	"gopkg.in/yaml.v3"
)

var (
	// ErrRemoteConfig — common-service вернул ошибку или пустой/неполный документ.
	ErrRemoteConfig = errors.New("remote config unusable")
)

// RedisOverride — значения spring.data.redis.* из удалённого документа.
// nil-поле означает «не задано, оставить локальное значение».
type RedisOverride struct {
	Host     *string
	Port     *int
	Password *string
	Database *int
}

// Apply накладывает непустые поля поверх локальной конфигурации Redis.
func (o *RedisOverride) Apply(cfg *config.RedisConfig) {
	if o == nil || cfg == nil {
		return
	}

	if o.Host != nil {
		cfg.Host = *o.Host
	}
	if o.Port != nil {
		cfg.Port = *o.Port
	}
	if o.Password != nil {
		cfg.Password = *o.Password
	}
	if o.Database != nil {
		cfg.Database = *o.Database
	}
}

// Load выбирает источник ключевого материала согласно политике:
// при включённой удалённой конфигурации сначала common-service
// (fail_fast=true — любая ошибка фатальна), затем локальные PEM-поля.
// Возвращает также переопределения Redis, если удалённый документ их нёс.
func Load(ctx context.Context, cfg *config.Config, client commonv1.CommonServiceClient) (*SigningKey, *RedisOverride, error) {
	const op = "keys.Load"

	lg := log.From(ctx)

	if cfg.RemoteConfig.Enabled {
		key, override, err := loadRemote(ctx, client, cfg.RemoteConfig)
		if err == nil {
			lg.Info("key_material_loaded",
				slog.String("source", "remote"),
				slog.String("kid", key.KeyID),
			)
			return key, override, nil
		}

		if cfg.RemoteConfig.FailFastEnabled() {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		lg.Warn("remote_key_material_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	key, err := FromMaterial(Material{
		PublicKeyPEM:  cfg.Auth.JWTPublicKey,
		PrivateKeyPEM: cfg.Auth.JWTPrivateKey,
		KeyID:         cfg.Auth.JWTKeyID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: local: %w", op, err)
	}

	lg.Info("key_material_loaded",
		slog.String("source", "local"),
		slog.String("kid", key.KeyID),
	)

	return key, nil, nil
}

// loadRemote запрашивает документ у common-service и извлекает из него
// jwt-материал и (опционально) настройки Redis.
func loadRemote(ctx context.Context, client commonv1.CommonServiceClient, pol config.RemoteConfigPolicy) (*SigningKey, *RedisOverride, error) {
	const op = "keys.loadRemote"

	if client == nil {
		return nil, nil, fmt.Errorf("%s: %w: common-service client is not configured", op, ErrRemoteConfig)
	}

	callCtx, cancel := context.WithTimeout(ctx, pol.Timeout)
	defer cancel()

	resp, err := client.LoadConfig(callCtx, &commonv1.LoadConfigRequest{NacosDataId: pol.NacosDataID})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.GetCode() != 0 {
		return nil, nil, fmt.Errorf("%s: %w: code=%d message=%q", op, ErrRemoteConfig, resp.GetCode(), resp.GetMessage())
	}

	if strings.TrimSpace(resp.GetConfig()) == "" {
		return nil, nil, fmt.Errorf("%s: %w: empty config", op, ErrRemoteConfig)
	}

	doc, err := parseDocument(resp.GetConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	material, err := extractMaterial(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	key, err := FromMaterial(material)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return key, extractRedis(doc), nil
}

// parseDocument разбирает текст документа: сначала строгий JSON,
// при неудаче — YAML.
func parseDocument(text string) (map[string]any, error) {
	const op = "keys.parseDocument"

	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: neither JSON nor YAML: %v", op, ErrRemoteConfig, err)
	}

	if doc == nil {
		return nil, fmt.Errorf("%s: %w: empty document", op, ErrRemoteConfig)
	}

	return doc, nil
}

// extractMaterial вытаскивает jwt.{public-key,private-key,key-id}.
// Допустимы дефисный, подчёркнутый и camelCase варианты имён.
func extractMaterial(doc map[string]any) (Material, error) {
	const op = "keys.extractMaterial"

	jwtNode, ok := childMap(doc, "jwt")
	if !ok {
		return Material{}, fmt.Errorf("%s: %w: no jwt section", op, ErrRemoteConfig)
	}

	pub, okPub := stringField(jwtNode, "public-key", "public_key", "publicKey")
	priv, okPriv := stringField(jwtNode, "private-key", "private_key", "privateKey")
	if !okPub || !okPriv {
		return Material{}, fmt.Errorf("%s: %w: jwt keys missing", op, ErrRemoteConfig)
	}

	kid, _ := stringField(jwtNode, "key-id", "key_id", "keyId")

	return Material{
		PublicKeyPEM:  pub,
		PrivateKeyPEM: priv,
		KeyID:         kid,
	}, nil
}

// extractRedis вытаскивает spring.data.redis.{host,port,password,database};
// отсутствие секции — не ошибка.
func extractRedis(doc map[string]any) *RedisOverride {
	spring, ok := childMap(doc, "spring")
	if !ok {
		return nil
	}
	data, ok := childMap(spring, "data")
	if !ok {
		return nil
	}
	redis, ok := childMap(data, "redis")
	if !ok {
		return nil
	}

	var override RedisOverride
	if v, ok := stringField(redis, "host"); ok {
		override.Host = &v
	}
	if v, ok := intField(redis, "port"); ok {
		override.Port = &v
	}
	if v, ok := stringField(redis, "password"); ok {
		override.Password = &v
	}
	if v, ok := intField(redis, "database"); ok {
		override.Database = &v
	}

	if override.Host == nil && override.Port == nil && override.Password == nil && override.Database == nil {
		return nil
	}

	return &override
}

// childMap достаёт вложенную секцию; YAML может дать map[any]any.
func childMap(node map[string]any, name string) (map[string]any, bool) {
	v, ok := node[name]
	if !ok {
		return nil, false
	}

	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, vv := range m {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = vv
		}
		return out, true
	default:
		return nil, false
	}
}

func stringField(node map[string]any, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := node[name]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}

	return "", false
}

func intField(node map[string]any, names ...string) (int, bool) {
	for _, name := range names {
		v, ok := node[name]
		if !ok {
			continue
		}

		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
	}

	return 0, false
}
