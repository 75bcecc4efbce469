// Package mocks holds gomock doubles for the API seams of the auth and posts
// packages.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockPostsAPI(ctrl)
//	api.EXPECT().ListPosts(gomock.Any()).Return(posts, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go -mock_names=API=MockAuthAPI github.com/naveenspark/postdesk/internal/auth API

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=posts_api_mock.go -mock_names=API=MockPostsAPI github.com/naveenspark/postdesk/internal/posts API
