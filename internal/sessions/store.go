package sessions

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store mantém a lista de revogação de sessões no Redis. Como o cookie vale
// sete dias, logout e desativação de conta precisam invalidar tokens que
// ainda estão dentro da validade.
type Store struct {
	RDB *redis.Client
}

func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	log.Printf("Redis client created (addr: %s)", addr)
	return rdb
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{RDB: rdb}
}

// RevogarToken marca o jti como revogado até o instante de expiração do token.
func (s *Store) RevogarToken(ctx context.Context, jti string, expiraEm time.Time) error {
	ttl := time.Until(expiraEm)
	if ttl <= 0 {
		return nil
	}
	return s.RDB.Set(ctx, "revogado:token:"+jti, "1", ttl).Err()
}

// RevogarUsuario invalida todas as sessões vivas de um usuário (conta
// desativada pelo admin). O TTL cobre a validade máxima de um cookie.
func (s *Store) RevogarUsuario(ctx context.Context, userID string, validade time.Duration) error {
	return s.RDB.Set(ctx, "revogado:usuario:"+userID, "1", validade).Err()
}

// LiberarUsuario remove a revogação global (conta reativada).
func (s *Store) LiberarUsuario(ctx context.Context, userID string) error {
	return s.RDB.Del(ctx, "revogado:usuario:"+userID).Err()
}

// Revogado diz se o token ou o usuário dono dele estão na lista de
// revogação. Erro de Redis conta como revogado: melhor derrubar a sessão do
// que aceitar um token possivelmente invalidado.
func (s *Store) Revogado(ctx context.Context, jti, userID string) bool {
	n, err := s.RDB.Exists(ctx, "revogado:token:"+jti, "revogado:usuario:"+userID).Result()
	if err != nil {
		log.Println("sessions: erro ao consultar revogação:", err)
		return true
	}
	return n > 0
}
