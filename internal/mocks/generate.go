package mocks

//go:generate mockery --name DatasetRepository --srcpkg github.com/datainsight-lab/datainsight/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Backend --srcpkg github.com/datainsight-lab/datainsight/internal/render --output ./render --outpkg rendermocks --with-expecter
//go:generate mockery --name Recorder --srcpkg github.com/datainsight-lab/datainsight/internal/render --output ./render --outpkg rendermocks --with-expecter
//go:generate mockery --name OutcomeRecorder --srcpkg github.com/datainsight-lab/datainsight/internal/charting --output ./charting --outpkg chartingmocks --with-expecter
//go:generate mockery --name Generator --srcpkg github.com/datainsight-lab/datainsight/internal/insights --output ./insights --outpkg insightsmocks --with-expecter
