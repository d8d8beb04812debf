package apikey

import "context"

type mockRepo struct {
	CreateKeyKey *Key
	CreateKeyErr error
	GetKeyKey    *Key
	GetKeyErr    error
	ListKeysKeys []Key
	ListKeysErr  error
}

func (m *mockRepo) CreateKey(ctx context.Context, k Key) (*Key, error) {
	return m.CreateKeyKey, m.CreateKeyErr
}

func (m *mockRepo) GetKey(ctx context.Context, key string) (*Key, error) {
	return m.GetKeyKey, m.GetKeyErr
}

func (m *mockRepo) ListKeys(ctx context.Context) ([]Key, error) {
	return m.ListKeysKeys, m.ListKeysErr
}
