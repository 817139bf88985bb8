package mocks

import (
	"context"

	"domain-manager/core/foreman"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of foreman.Client
type Client struct {
	mock.Mock
}

func (m *Client) Search(ctx context.Context, resource foreman.ResourceType, filter map[string]string) (foreman.Record, error) {
	args := m.Called(ctx, resource, filter)
	if record, ok := args.Get(0).(foreman.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Get(ctx context.Context, resource foreman.ResourceType, id int) (foreman.Record, error) {
	args := m.Called(ctx, resource, id)
	if record, ok := args.Get(0).(foreman.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Create(ctx context.Context, resource foreman.ResourceType, fields foreman.Record) (foreman.Record, error) {
	args := m.Called(ctx, resource, fields)
	if record, ok := args.Get(0).(foreman.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Update(ctx context.Context, resource foreman.ResourceType, id int, fields foreman.Record) (foreman.Record, error) {
	args := m.Called(ctx, resource, id, fields)
	if record, ok := args.Get(0).(foreman.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Delete(ctx context.Context, resource foreman.ResourceType, id int) (foreman.Record, error) {
	args := m.Called(ctx, resource, id)
	if record, ok := args.Get(0).(foreman.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}
