package model

import (
	"math"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

// embankmentWidth is the horizontal distance over which terrain blends down
// to meet the extended driveway.
const embankmentWidth = 20.0

// curveSegments approximates the driveway's quarter-circle turn.
const curveSegments = 48

// driveLayout is the derived motorcourt and driveway footprint. The floor
// corners are ordered start-left, start-right, end-right, end-left.
type driveLayout struct {
	motorcourt geo.Polygon
	driveway   geo.Polygon
	start      geo.Point2D
	end        geo.Point2D
	floor      [4]geo.Point2D
	dir        geo.Point2D // unit vector from start toward end
	extraSegs  []geo.Polygon
	leftEdges  []geo.Point2D
	rightEdges []geo.Point2D
}

// intersectOrFallback matches the forgiving intersection used for the
// motorcourt apex: parallel input degrades to a point below the edge pair
// instead of failing the whole build.
func intersectOrFallback(a0, a1, b0, b1 geo.Point2D) geo.Point2D {
	p, err := geo.LineIntersection(a0, a1, b0, b1)
	if err != nil {
		return geo.Pt((a0.X+b0.X)/2, math.Min(a0.Y, b0.Y)-math.Abs(a0.X-b0.X))
	}
	return p
}

// motorcourtAndDriveway lays out the half-hex motorcourt south of the
// atrium, the ramp connecting its apex to grade, and the flat plus curved
// approach sections beyond the ramp.
func motorcourtAndDriveway(s, width, length, flatLength, curveLength float64) driveLayout {
	center := geo.Pt(0, -math.Sqrt(3)*s)
	pts := make([]geo.Point2D, 6)
	for i := 0; i < 6; i++ {
		a := float64(i) * 60 * math.Pi / 180
		pts[i] = geo.Pt(center.X+s*math.Cos(a), center.Y+s*math.Sin(a))
	}

	// Rear half toward the house plus a triangular front apex.
	apex := intersectOrFallback(pts[3], pts[4], pts[0], pts[5])
	motorcourt := geo.NewPolygon([]geo.Point2D{pts[0], pts[1], pts[2], pts[3], apex})

	rearLeft, rearRight := pts[3], pts[0]
	rearWidth := rearRight.Distance(rearLeft)
	if rearWidth < 1e-6 {
		rearWidth = width
	}
	t := math.Max(0.05, math.Min(0.95, width/rearWidth))

	startLeft := apex.Add(rearLeft.Sub(apex).Scale(t))
	startRight := apex.Add(rearRight.Sub(apex).Scale(t))
	startCenter := geo.MidPoint(startLeft, startRight)

	u := apex.Sub(startCenter)
	if u.Length() < 1e-9 {
		u = geo.Pt(0, -1)
	} else {
		u = u.Normalize()
	}
	endLeft := startLeft.Add(u.Scale(length))
	endRight := startRight.Add(u.Scale(length))
	endCenter := geo.MidPoint(endLeft, endRight)

	layout := driveLayout{
		motorcourt: motorcourt,
		driveway:   geo.NewPolygon([]geo.Point2D{startLeft, startRight, endRight, endLeft}),
		start:      startCenter,
		end:        endCenter,
		floor:      [4]geo.Point2D{startLeft, startRight, endRight, endLeft},
		dir:        u,
	}

	n := geo.Pt(-u.Y, u.X)
	halfW := width / 2

	if flatLength > 0 {
		flatEndLeft := endLeft.Add(u.Scale(flatLength))
		flatEndRight := endRight.Add(u.Scale(flatLength))
		layout.extraSegs = append(layout.extraSegs,
			geo.NewPolygon([]geo.Point2D{endLeft, endRight, flatEndRight, flatEndLeft}))
		layout.leftEdges = append(layout.leftEdges, endLeft, flatEndLeft)
		layout.rightEdges = append(layout.rightEdges, endRight, flatEndRight)

		if curveLength > 0 {
			flatEndCenter := geo.MidPoint(flatEndLeft, flatEndRight)
			rCenter := curveLength * 2 / math.Pi
			arcCenter := flatEndCenter.Add(n.Scale(rCenter))
			rOuter := rCenter + halfW
			rInner := math.Max(rCenter-halfW, 0.5)

			thetaStart := math.Atan2(flatEndCenter.Y-arcCenter.Y, flatEndCenter.X-arcCenter.X)
			thetaEnd := thetaStart + math.Pi/2
			kappa := 4.0 / 3.0 * math.Tan(math.Pi/8)

			// Cubic control points for each edge of the turn.
			p3L := geo.Pt(arcCenter.X+rOuter*math.Cos(thetaEnd), arcCenter.Y+rOuter*math.Sin(thetaEnd))
			p1L := flatEndLeft.Add(u.Scale(kappa * rOuter))
			p2L := p3L.Sub(n.Scale(kappa * rOuter))

			p3R := geo.Pt(arcCenter.X+rInner*math.Cos(thetaEnd), arcCenter.Y+rInner*math.Sin(thetaEnd))
			p1R := flatEndRight.Add(u.Scale(kappa * rInner))
			p2R := p3R.Sub(n.Scale(kappa * rInner))

			prevLeft, prevRight := flatEndLeft, flatEndRight
			for seg := 1; seg <= curveSegments; seg++ {
				t := float64(seg) / curveSegments
				curLeft := geo.CubicBezier(flatEndLeft, p1L, p2L, p3L, t)
				curRight := geo.CubicBezier(flatEndRight, p1R, p2R, p3R, t)
				segPoly := geo.NewPolygon([]geo.Point2D{prevLeft, prevRight, curRight, curLeft})
				if segPoly.Area() > 0.01 {
					layout.extraSegs = append(layout.extraSegs, segPoly)
				}
				layout.leftEdges = append(layout.leftEdges, curLeft)
				layout.rightEdges = append(layout.rightEdges, curRight)
				prevLeft, prevRight = curLeft, curRight
			}
		}
	}
	return layout
}

// terrainProfile is the piecewise-linear north-south elevation: flat at
// zHigh behind yBreak, linear down to zLow at yLow, flat beyond.
func terrainProfile(y, yBreak, yLow, zHigh, zLow float64) float64 {
	if y <= yBreak {
		return zHigh
	}
	if y >= yLow {
		return zLow
	}
	if math.Abs(yLow-yBreak) < 1e-9 {
		return zLow
	}
	t := (y - yBreak) / (yLow - yBreak)
	return zHigh + (zLow-zHigh)*t
}

// siteGrade evaluates terrain and driveway elevations across the site.
type siteGrade struct {
	yBreak, yLow float64
	upper, lower float64

	drive     driveLayout
	driveLen  float64
	endZ      float64
	slope     float64
	hasExtras bool
	extMin    geo.Point2D
	extMax    geo.Point2D
}

// gradeBreaks returns the terrain profile break lines: flat behind the rear
// of wings A and B, fully lowered at wing C's outer midpoint.
func gradeBreaks(g *plan.Geometry) (yBreak, yLow float64) {
	yBreak = math.Inf(-1)
	for _, name := range []string{plan.WingA, plan.WingB} {
		for _, p := range g.Wings[name].Vertices {
			yBreak = math.Max(yBreak, p.Y)
		}
	}
	yLow = geo.MidPoint(g.ExtensionVertices[1], g.ExtensionVertices[2]).Y
	return yBreak, yLow
}

func newSiteGrade(g *plan.Geometry, cfg *config.Params, drive driveLayout) *siteGrade {
	sg := &siteGrade{
		upper: cfg.UpperGround,
		lower: cfg.LowerGround,
		drive: drive,
		slope: cfg.DrivewayApproachSlope,
	}
	sg.yBreak, sg.yLow = gradeBreaks(g)
	sg.driveLen = math.Max(drive.end.Distance(drive.start), 1e-6)
	sg.endZ = sg.baseZ(drive.end.Y)

	if len(drive.leftEdges) > 0 || len(drive.rightEdges) > 0 {
		sg.hasExtras = true
		all := append(append([]geo.Point2D{}, drive.leftEdges...), drive.rightEdges...)
		sg.extMin = geo.Pt(math.Inf(1), math.Inf(1))
		sg.extMax = geo.Pt(math.Inf(-1), math.Inf(-1))
		for _, p := range all {
			sg.extMin.X = math.Min(sg.extMin.X, p.X)
			sg.extMin.Y = math.Min(sg.extMin.Y, p.Y)
			sg.extMax.X = math.Max(sg.extMax.X, p.X)
			sg.extMax.Y = math.Max(sg.extMax.Y, p.Y)
		}
		sg.extMin = sg.extMin.Sub(geo.Pt(embankmentWidth, embankmentWidth))
		sg.extMax = sg.extMax.Add(geo.Pt(embankmentWidth, embankmentWidth))
	}
	return sg
}

func (sg *siteGrade) baseZ(y float64) float64 {
	return terrainProfile(y, sg.yBreak, sg.yLow, sg.upper, sg.lower)
}

// drivewayZ ramps linearly from the lower ground at the motorcourt seam up
// to the terrain at the ramp end.
func (sg *siteGrade) drivewayZ(p geo.Point2D) float64 {
	proj := p.Sub(sg.drive.start).Dot(sg.drive.dir)
	t := math.Max(0, math.Min(1, proj/sg.driveLen))
	return sg.lower + (sg.endZ-sg.lower)*t
}

// extraDriveZ continues past the ramp end at the approach slope.
func (sg *siteGrade) extraDriveZ(p geo.Point2D) float64 {
	proj := p.Sub(sg.drive.end).Dot(sg.drive.dir)
	return sg.endZ - sg.slope*math.Max(0, proj)
}

// terrainZ is the base profile with a smoothstep embankment blending down
// to the extended driveway within embankmentWidth of its edges.
func (sg *siteGrade) terrainZ(p geo.Point2D) float64 {
	base := sg.baseZ(p.Y)
	if !sg.hasExtras {
		return base
	}
	if p.X < sg.extMin.X || p.X > sg.extMax.X || p.Y < sg.extMin.Y || p.Y > sg.extMax.Y {
		return base
	}

	minDist := embankmentWidth + 1
	nearestZ := base
	for _, edges := range [][]geo.Point2D{sg.drive.leftEdges, sg.drive.rightEdges} {
		for i := 0; i+1 < len(edges); i++ {
			nearest := geo.ClosestPointOnSegment(p, edges[i], edges[i+1])
			if d := p.Distance(nearest); d < minDist {
				minDist = d
				nearestZ = sg.extraDriveZ(nearest)
			}
		}
	}
	if minDist >= embankmentWidth {
		return base
	}
	blend := minDist / embankmentWidth
	blend = blend * blend * (3 - 2*blend)
	return nearestZ + blend*(base-nearestZ)
}

// distanceToBoundary is the minimum distance from pt to any polygon edge.
func distanceToBoundary(pt geo.Point2D, poly geo.Polygon) float64 {
	min := math.Inf(1)
	for i := range poly.Vertices {
		a, b := poly.Edge(i)
		min = math.Min(min, geo.PointSegmentDistance(pt, a, b))
	}
	return min
}

// outerContours filters a region's contours down to the ones that are not
// holes.
func outerContours(r geo.Region) []geo.Polygon {
	contours := r.Contours()
	var out []geo.Polygon
	for i, c := range contours {
		if c.IsEmpty() {
			continue
		}
		depth := 0
		for j, other := range contours {
			if i != j && other.Contains(c.Vertices[0]) {
				depth++
			}
		}
		if depth%2 == 0 {
			out = append(out, c)
		}
	}
	return out
}

// drivewayCuts builds the terrain cut for the ramp: the straight cut quad
// plus wedges that extend it to the motorcourt's angled side edges so no
// shoulder slivers remain.
func drivewayCuts(drive driveLayout, width float64) (cut geo.Polygon, cutForTerrain geo.Region, corners [4]geo.Point2D) {
	u := drive.dir
	cutN := geo.Pt(-u.Y, u.X)
	half := width / 2

	startA := drive.start.Add(cutN.Scale(half))
	startB := drive.start.Sub(cutN.Scale(half))
	endA := drive.end.Add(cutN.Scale(half))
	endB := drive.end.Sub(cutN.Scale(half))

	sideSign := func(p geo.Point2D) float64 {
		v := p.Sub(drive.start)
		return u.X*v.Y - u.Y*v.X
	}
	leftPositive := sideSign(drive.floor[0]) >= 0

	startLeft, startRight := startA, startB
	if (sideSign(startA) >= 0) != leftPositive {
		startLeft, startRight = startB, startA
	}
	endLeft, endRight := endA, endB
	if (sideSign(endA) >= 0) != leftPositive {
		endLeft, endRight = endB, endA
	}
	corners = [4]geo.Point2D{startLeft, startRight, endRight, endLeft}
	cut = geo.NewPolygon([]geo.Point2D{startLeft, startRight, endRight, endLeft})

	cutForTerrain = geo.RegionFrom(cut)
	mc := drive.motorcourt.Vertices
	if len(mc) < 5 {
		return cut, cutForTerrain, corners
	}

	// Apex is the motorcourt vertex nearest the driveway start.
	apexIdx := 0
	bestSq := math.Inf(1)
	for i, p := range mc {
		if d := p.Distance(drive.start); d*d < bestSq {
			bestSq = d * d
			apexIdx = i
		}
	}
	prev := mc[(apexIdx-1+len(mc))%len(mc)]
	next := mc[(apexIdx+1)%len(mc)]
	apex := mc[apexIdx]

	offsetOf := func(p geo.Point2D) float64 {
		return p.Sub(drive.start).Dot(cutN)
	}
	edgeAtOffset := func(p0, p1 geo.Point2D, target float64) (geo.Point2D, bool) {
		d0, d1 := offsetOf(p0), offsetOf(p1)
		if math.Abs(d1-d0) < 1e-9 {
			return geo.Point2D{}, false
		}
		t := (target - d0) / (d1 - d0)
		if t <= 0 || t >= 1 {
			return geo.Point2D{}, false
		}
		return p0.Lerp(p1, t), true
	}

	leftEdge := [2]geo.Point2D{prev, apex}
	rightEdge := [2]geo.Point2D{apex, next}
	if offsetOf(prev) >= offsetOf(next) {
		leftEdge = [2]geo.Point2D{next, apex}
		rightEdge = [2]geo.Point2D{apex, prev}
	}

	floorSL, floorSR := drive.floor[0], drive.floor[1]
	if extLeft, ok := edgeAtOffset(leftEdge[0], leftEdge[1], offsetOf(startLeft)); ok {
		wedge := geo.NewPolygon([]geo.Point2D{extLeft, startLeft, floorSL}).EnsureCCW()
		cutForTerrain = cutForTerrain.Union(geo.RegionFrom(wedge))
	}
	if extRight, ok := edgeAtOffset(rightEdge[0], rightEdge[1], offsetOf(startRight)); ok {
		wedge := geo.NewPolygon([]geo.Point2D{extRight, floorSR, startRight}).EnsureCCW()
		cutForTerrain = cutForTerrain.Union(geo.RegionFrom(wedge))
	}
	return cut, cutForTerrain, corners
}

// addTerrain builds the graded ground, the motorcourt slab with retaining
// walls, the driveway ramp, and the extended approach sections.
func addTerrain(m *Mesh, g *plan.Geometry, cfg *config.Params) {
	zBase := cfg.LowerGround - cfg.TerrainDrop

	drive := motorcourtAndDriveway(cfg.S, cfg.DrivewayWidth, cfg.DrivewayLength,
		cfg.DrivewayFlatLength, cfg.DrivewayCurveLength)
	grade := newSiteGrade(g, cfg, drive)
	cut, cutForTerrain, cutCorners := drivewayCuts(drive, cfg.DrivewayWidth)

	// Terrain patch: a square six times the house extent, centered on it.
	var housePts []geo.Point2D
	housePts = append(housePts, g.MasterTriangle.Vertices...)
	housePts = append(housePts, g.HexVertices...)
	for _, w := range g.Wings {
		housePts = append(housePts, w.Vertices...)
	}
	minP, maxP := geo.NewPolygon(housePts).BoundingBox()
	c := geo.MidPoint(minP, maxP)
	half := math.Max(maxP.X-minP.X, maxP.Y-minP.Y) * 6 / 2
	square := geo.NewPolygon([]geo.Point2D{
		geo.Pt(c.X-half, c.Y-half), geo.Pt(c.X+half, c.Y-half),
		geo.Pt(c.X+half, c.Y+half), geo.Pt(c.X-half, c.Y+half),
	})

	cuts := geo.RegionFrom(g.Atrium())
	for _, name := range []string{plan.WingA, plan.WingB, plan.WingC} {
		cuts = cuts.Union(geo.RegionFrom(g.Wings[name]))
	}
	for _, sc := range []geo.Polygon{g.SideCourtyardR, g.SideCourtyardL} {
		if !sc.IsEmpty() {
			cuts = cuts.Union(geo.RegionFrom(sc))
		}
	}
	cuts = cuts.Union(geo.RegionFrom(drive.motorcourt))
	cuts = cuts.Union(cutForTerrain)
	for _, seg := range drive.extraSegs {
		cuts = cuts.Union(geo.RegionFrom(seg))
	}
	terrainArea := geo.RegionFrom(square).Difference(cuts)

	// Graded top surface.
	for _, tri := range geo.Triangulate(terrainArea) {
		t := Triangle{
			vec(tri[0], grade.terrainZ(tri[0])),
			vec(tri[1], grade.terrainZ(tri[1])),
			vec(tri[2], grade.terrainZ(tri[2])),
		}
		m.AddTriangle(MaterialGround, "ground", OrientToward(t, r3Up()))
	}

	// Underside and perimeter skirt down to the base of the earth volume.
	capRegion(m, MaterialGround, "ground", terrainArea, zBase, false)
	for _, contour := range outerContours(terrainArea) {
		ring := contour.Vertices
		for i := range ring {
			p0 := ring[i]
			p1 := ring[(i+1)%len(ring)]
			z0 := grade.terrainZ(p0)
			z1 := grade.terrainZ(p1)
			m.AddTriangle(MaterialGround, "ground",
				Triangle{vec(p0, zBase), vec(p1, zBase), vec(p1, z1)})
			m.AddTriangle(MaterialGround, "ground",
				Triangle{vec(p0, zBase), vec(p1, z1), vec(p0, z0)})
		}
	}

	addMotorcourt(m, g, cfg, grade, drive, cut)
	addDriveway(m, cfg, grade, drive, cutCorners)
	addDrivewayExtensions(m, cfg, grade, drive)
}

// addMotorcourt builds the motorcourt slab, its retaining walls down to
// terrain, and the exposed slab edges. The atrium-front edge gets a plain
// slab face; edges on the driveway cut stay open.
func addMotorcourt(m *Mesh, g *plan.Geometry, cfg *config.Params, grade *siteGrade, drive driveLayout, cut geo.Polygon) {
	lower := cfg.LowerGround
	slab := cfg.SlabThickness
	floorArea := geo.RegionFrom(drive.motorcourt).Difference(geo.RegionFrom(cut))

	for _, poly := range outerContours(floorArea) {
		capPolygon(m, MaterialConcrete, "motorcourt_floor", poly, lower, true)
		capPolygon(m, MaterialConcrete, "motorcourt_floor", poly, lower-slab, false)

		centroid := poly.Centroid()
		ring := poly.Vertices
		for i := range ring {
			p0 := ring[i]
			p1 := ring[(i+1)%len(ring)]
			mid := geo.MidPoint(p0, p1)

			onCut := distanceToBoundary(p0, cut) < 1e-5 &&
				distanceToBoundary(p1, cut) < 1e-5 &&
				distanceToBoundary(mid, cut) < 1e-5
			onAtriumFront := geo.PointSegmentDistance(p0, g.AtriumFrontEdge[0], g.AtriumFrontEdge[1]) < 1e-5 &&
				geo.PointSegmentDistance(p1, g.AtriumFrontEdge[0], g.AtriumFrontEdge[1]) < 1e-5 &&
				geo.PointSegmentDistance(mid, g.AtriumFrontEdge[0], g.AtriumFrontEdge[1]) < 1e-5

			if onCut {
				continue
			}

			toCenter := centroid.Sub(mid)
			inward := r3Horiz(toCenter)

			slabEdge1 := Triangle{vec(p0, lower-slab), vec(p1, lower-slab), vec(p1, lower)}
			slabEdge2 := Triangle{vec(p0, lower-slab), vec(p1, lower), vec(p0, lower)}

			if onAtriumFront {
				m.AddTriangle(MaterialConcrete, "motorcourt_walls", OrientToward(slabEdge1, r3Neg(inward)))
				m.AddTriangle(MaterialConcrete, "motorcourt_walls", OrientToward(slabEdge2, r3Neg(inward)))
				continue
			}

			z0 := grade.terrainZ(p0)
			z1 := grade.terrainZ(p1)
			wall1 := Triangle{vec(p0, lower-slab), vec(p1, z1), vec(p1, lower-slab)}
			wall2 := Triangle{vec(p0, lower-slab), vec(p0, z0), vec(p1, z1)}
			m.AddTriangle(MaterialConcrete, "motorcourt_walls", OrientToward(wall1, inward))
			m.AddTriangle(MaterialConcrete, "motorcourt_walls", OrientToward(wall2, inward))
			m.AddTriangle(MaterialConcrete, "motorcourt_walls", OrientToward(slabEdge1, r3Neg(inward)))
			m.AddTriangle(MaterialConcrete, "motorcourt_walls", OrientToward(slabEdge2, r3Neg(inward)))
		}
	}
}

// addDriveway builds the sloped ramp slab and its flanking retaining walls
// out to the terrain cut.
func addDriveway(m *Mesh, cfg *config.Params, grade *siteGrade, drive driveLayout, cutCorners [4]geo.Point2D) {
	slab := cfg.SlabThickness

	for _, tri := range geo.Triangulate(geo.RegionFrom(drive.driveway)) {
		top := Triangle{
			vec(tri[0], grade.drivewayZ(tri[0])),
			vec(tri[1], grade.drivewayZ(tri[1])),
			vec(tri[2], grade.drivewayZ(tri[2])),
		}
		m.AddTriangle(MaterialConcrete, "driveway_floor", OrientToward(top, r3Up()))
		bottom := Triangle{
			vec(tri[0], grade.drivewayZ(tri[0])-slab),
			vec(tri[1], grade.drivewayZ(tri[1])-slab),
			vec(tri[2], grade.drivewayZ(tri[2])-slab),
		}
		m.AddTriangle(MaterialConcrete, "driveway_floor", OrientToward(bottom, r3Down()))
	}

	center := geo.MidPoint(drive.start, drive.end)
	floorSL, floorSR, floorER, floorEL := drive.floor[0], drive.floor[1], drive.floor[2], drive.floor[3]
	cutSL, cutSR, cutER, cutEL := cutCorners[0], cutCorners[1], cutCorners[2], cutCorners[3]

	wallRuns := [][4]geo.Point2D{
		{floorSL, cutSL, cutEL, floorEL},
		{floorSR, cutSR, cutER, floorER},
	}
	for _, run := range wallRuns {
		fStart, cStart, cEnd, fEnd := run[0], run[1], run[2], run[3]

		fsBotZ := grade.drivewayZ(fStart) - slab
		feBotZ := grade.drivewayZ(fEnd) - slab
		fsBot := vec(fStart, fsBotZ)
		feBot := vec(fEnd, feBotZ)
		cs := vec(cStart, math.Max(grade.terrainZ(cStart), fsBotZ))
		ce := vec(cEnd, math.Max(grade.terrainZ(cEnd), feBotZ))

		wallMid := geo.Pt((fStart.X+cStart.X+cEnd.X)/3, (fStart.Y+cStart.Y+cEnd.Y)/3)
		inward := r3Horiz(center.Sub(wallMid))
		m.AddTriangle(MaterialConcrete, "driveway_walls", OrientToward(Triangle{fsBot, cs, ce}, inward))
		m.AddTriangle(MaterialConcrete, "driveway_walls", OrientToward(Triangle{fsBot, ce, feBot}, inward))

		fsTop := vec(fStart, grade.drivewayZ(fStart))
		feTop := vec(fEnd, grade.drivewayZ(fEnd))
		m.AddTriangle(MaterialConcrete, "driveway_walls", OrientToward(Triangle{fsBot, feBot, feTop}, r3Neg(inward)))
		m.AddTriangle(MaterialConcrete, "driveway_walls", OrientToward(Triangle{fsBot, feTop, fsTop}, r3Neg(inward)))
	}
}

// addDrivewayExtensions builds the flat and curved approach slabs plus the
// retaining walls that hold back terrain standing above them.
func addDrivewayExtensions(m *Mesh, cfg *config.Params, grade *siteGrade, drive driveLayout) {
	slab := cfg.SlabThickness

	for _, seg := range drive.extraSegs {
		for _, tri := range geo.Triangulate(geo.RegionFrom(seg)) {
			top := Triangle{
				vec(tri[0], grade.extraDriveZ(tri[0])),
				vec(tri[1], grade.extraDriveZ(tri[1])),
				vec(tri[2], grade.extraDriveZ(tri[2])),
			}
			m.AddTriangle(MaterialConcrete, "driveway_ext_floor", OrientToward(top, r3Up()))
			bottom := Triangle{
				vec(tri[0], grade.extraDriveZ(tri[0])-slab),
				vec(tri[1], grade.extraDriveZ(tri[1])-slab),
				vec(tri[2], grade.extraDriveZ(tri[2])-slab),
			}
			m.AddTriangle(MaterialConcrete, "driveway_ext_floor", OrientToward(bottom, r3Down()))
		}
	}

	for _, side := range []struct {
		edges []geo.Point2D
		sign  float64
	}{
		{drive.leftEdges, 1},
		{drive.rightEdges, -1},
	} {
		for i := 0; i+1 < len(side.edges); i++ {
			p0 := side.edges[i]
			p1 := side.edges[i+1]
			tz0 := grade.terrainZ(p0)
			tz1 := grade.terrainZ(p1)
			botZ0 := grade.extraDriveZ(p0) - slab
			botZ1 := grade.extraDriveZ(p1) - slab
			if tz0 <= botZ0+0.05 && tz1 <= botZ1+0.05 {
				continue
			}

			top0 := vec(p0, math.Max(tz0, botZ0))
			top1 := vec(p1, math.Max(tz1, botZ1))
			bot0 := vec(p0, botZ0)
			bot1 := vec(p1, botZ1)

			edge := p1.Sub(p0)
			outward := r3Horiz(geo.Pt(-edge.Y*side.sign, edge.X*side.sign))
			m.AddTriangle(MaterialConcrete, "driveway_ext_walls",
				OrientToward(Triangle{bot0, bot1, top1}, outward))
			m.AddTriangle(MaterialConcrete, "driveway_ext_walls",
				OrientToward(Triangle{bot0, top1, top0}, outward))
		}
	}
}
