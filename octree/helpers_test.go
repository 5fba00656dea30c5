package octree

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/eaa3/octomap/pointcloud"
)

// pointcloudWith builds a PointCloud containing exactly the given points, failing the test if any
// insertion errors.
func pointcloudWith(t *testing.T, points ...r3.Vector) pointcloud.PointCloud {
	t.Helper()
	cloud, err := pointcloud.FromSlice(points)
	test.That(t, err, test.ShouldBeNil)
	return cloud
}
