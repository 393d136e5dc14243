package mocks

//go:generate mockery --name SalesLedger --srcpkg github.com/aevon-lab/bestsellers/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Catalog --srcpkg github.com/aevon-lab/bestsellers/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
