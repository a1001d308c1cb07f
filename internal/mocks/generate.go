package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../user --output usermock --outpkg usermock --filename store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../group --output groupmock --outpkg groupmock --filename store_mock.go
