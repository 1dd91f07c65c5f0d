// Package spline 由拟合点推导 B 样条的控制点/节点表示。
// 插值与逼近算法均不保证与任何 CAD 软件内部的拟合算法一致，
// 得到的是形状相近的合法样条，而不是逐字节复刻。
package spline

import (
	"fmt"
	"math"

	"github.com/zooyer/dxfgen/core"
)

// 参数化方法名，除此之外的取值一律报错
const (
	MethodUniform     = "uniform"
	MethodDistance    = "distance"
	MethodCentripetal = "centripetal"
)

// Frame 描述一条 B 样条：阶数、控制点、节点，有理样条附带权重。
// 恒有 len(Knots) == len(ControlPoints) + Degree + 1
type Frame struct {
	Degree        int
	ControlPoints []core.Point
	Knots         []float64
	Weights       []float64
}

// Validate 校验节点/控制点/权重的长度与单调性约束
func (f *Frame) Validate() error {
	if f.Degree < 1 {
		return &core.ValueError{Field: "degree", Reason: "degree must be >= 1"}
	}
	if len(f.Knots) != len(f.ControlPoints)+f.Degree+1 {
		return &core.ValueError{
			Field:  "knots",
			Reason: fmt.Sprintf("%d knots required, got %d", len(f.ControlPoints)+f.Degree+1, len(f.Knots)),
		}
	}
	for i := 1; i < len(f.Knots); i++ {
		if f.Knots[i] < f.Knots[i-1] {
			return &core.ValueError{Field: "knots", Reason: "knot values must be non-decreasing"}
		}
	}
	if f.Weights != nil && len(f.Weights) != len(f.ControlPoints) {
		return &core.ValueError{Field: "weights", Reason: "one weight value per control point required"}
	}
	return nil
}

// Params 计算拟合点上的参数向量 t，严格递增且 t[0]=0、t[n]=1。
//
//  1. uniform:     t[i] = i/n，等距分布
//  2. distance:    t[i] 与弦长累计值成正比
//  3. centripetal: t[i] 与弦长的 power 次幂累计值成正比
func Params(points []core.Point, method string, power float64) ([]float64, error) {
	if len(points) < 2 {
		return nil, insufficientFitPoints()
	}

	t := make([]float64, len(points))
	switch method {
	case MethodUniform:
		n := float64(len(points) - 1)
		for i := range t {
			t[i] = float64(i) / n
		}
	case MethodDistance, MethodCentripetal:
		pow := 1.0
		if method == MethodCentripetal {
			pow = power
		}
		var total float64
		for i := 1; i < len(points); i++ {
			d := points[i].Distance(points[i-1])
			if d == 0 {
				return nil, &core.ValueError{Field: "fit points", Reason: "coincident fit points"}
			}
			total += math.Pow(d, pow)
			t[i] = total
		}
		for i := range t {
			t[i] /= total
		}
		t[len(t)-1] = 1 // 消除累计的浮点误差
	default:
		return nil, &core.ValueError{Field: "method", Reason: fmt.Sprintf("unknown method %q", method)}
	}

	return t, nil
}

// ControlFrame 全局插值：求一条精确经过所有拟合点的开放钳位样条。
// 节点取参数向量的滑动平均，控制点解基函数线性方程组得到
func ControlFrame(fit []core.Point, degree int, method string, power float64) (*Frame, error) {
	if degree < 1 {
		return nil, &core.ValueError{Field: "degree", Reason: "degree must be >= 1"}
	}
	if len(fit) < degree+1 {
		return nil, insufficientFitPoints()
	}

	t, err := Params(fit, method, power)
	if err != nil {
		return nil, err
	}

	knots := averagedKnots(t, degree)

	// 系数矩阵：a[i][j] = N(j, degree, t[i])
	n := len(fit)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			a[i][j] = basis(j, degree, t[i], knots)
		}
	}

	control, err := solve(a, append([]core.Point(nil), fit...))
	if err != nil {
		return nil, err
	}

	return &Frame{Degree: degree, ControlPoints: control, Knots: knots}, nil
}

// ControlFrameApprox 最小二乘逼近：用 count 个控制点拟合更多的拟合点，
// 首末拟合点精确保留，中间拟合点只近似经过
func ControlFrameApprox(fit []core.Point, count, degree int, method string, power float64) (*Frame, error) {
	if degree < 1 {
		return nil, &core.ValueError{Field: "degree", Reason: "degree must be >= 1"}
	}
	if len(fit) < 2 {
		return nil, insufficientFitPoints()
	}
	if count <= degree {
		return nil, &core.ValueError{Field: "count", Reason: "control point count must be greater than degree"}
	}
	if count >= len(fit) {
		return nil, &core.ValueError{Field: "count", Reason: "control point count must be less than fit point count"}
	}

	t, err := Params(fit, method, power)
	if err != nil {
		return nil, err
	}

	m := len(fit) - 1
	n := count - 1
	p := degree
	knots := approximationKnots(t, n, p)

	// 首末控制点即首末拟合点
	control := make([]core.Point, count)
	control[0] = fit[0]
	control[n] = fit[m]

	if n > 1 {
		// 残差：去掉首末基函数贡献后的拟合点
		residual := make([]core.Point, m-1)
		basisRows := make([][]float64, m-1)
		for k := 1; k < m; k++ {
			row := make([]float64, n-1)
			for j := 1; j < n; j++ {
				row[j-1] = basis(j, p, t[k], knots)
			}
			basisRows[k-1] = row
			residual[k-1] = fit[k].
				Sub(fit[0].Mul(basis(0, p, t[k], knots))).
				Sub(fit[m].Mul(basis(n, p, t[k], knots)))
		}

		// 法方程 (Nᵀ·N)·P = Nᵀ·R
		ntn := make([][]float64, n-1)
		rhs := make([]core.Point, n-1)
		for i := 0; i < n-1; i++ {
			ntn[i] = make([]float64, n-1)
			for j := 0; j < n-1; j++ {
				var sum float64
				for k := range basisRows {
					sum += basisRows[k][i] * basisRows[k][j]
				}
				ntn[i][j] = sum
			}
			var sum core.Point
			for k := range basisRows {
				sum = sum.Add(residual[k].Mul(basisRows[k][i]))
			}
			rhs[i] = sum
		}

		inner, err := solve(ntn, rhs)
		if err != nil {
			return nil, err
		}
		copy(control[1:], inner)
	}

	return &Frame{Degree: degree, ControlPoints: control, Knots: knots}, nil
}

// OpenUniform 由控制点构造开放均匀（钳位）样条：
// 首末节点各重复 degree+1 次，曲线经过首末控制点
func OpenUniform(control []core.Point, degree int) (*Frame, error) {
	if degree < 1 {
		return nil, &core.ValueError{Field: "degree", Reason: "degree must be >= 1"}
	}
	if len(control) < degree+1 {
		return nil, insufficientFitPoints()
	}
	return &Frame{
		Degree:        degree,
		ControlPoints: append([]core.Point(nil), control...),
		Knots:         openUniformKnots(len(control), degree),
	}, nil
}

// Periodic 由控制点构造周期（闭合）样条：
// 控制点序列尾部重复前 degree 个点，接缝处 C^(degree-1) 连续，
// 曲线不经过任何一个固定的起终点
func Periodic(control []core.Point, degree int) (*Frame, error) {
	if degree < 1 {
		return nil, &core.ValueError{Field: "degree", Reason: "degree must be >= 1"}
	}
	if len(control) < degree+1 {
		return nil, insufficientFitPoints()
	}

	extended := make([]core.Point, 0, len(control)+degree)
	extended = append(extended, control...)
	extended = append(extended, control[:degree]...)

	knots := make([]float64, len(extended)+degree+1)
	for i := range knots {
		knots[i] = float64(i)
	}

	return &Frame{Degree: degree, ControlPoints: extended, Knots: knots}, nil
}

// OpenRational 开放均匀有理样条，每个控制点附带权重
func OpenRational(control []core.Point, weights []float64, degree int) (*Frame, error) {
	if len(weights) != len(control) {
		return nil, &core.ValueError{Field: "weights", Reason: "one weight value per control point required"}
	}
	frame, err := OpenUniform(control, degree)
	if err != nil {
		return nil, err
	}
	frame.Weights = append([]float64(nil), weights...)
	return frame, nil
}

// PeriodicRational 周期有理样条，权重随控制点一同做尾部重复
func PeriodicRational(control []core.Point, weights []float64, degree int) (*Frame, error) {
	if len(weights) != len(control) {
		return nil, &core.ValueError{Field: "weights", Reason: "one weight value per control point required"}
	}
	frame, err := Periodic(control, degree)
	if err != nil {
		return nil, err
	}
	extended := make([]float64, 0, len(weights)+degree)
	extended = append(extended, weights...)
	extended = append(extended, weights[:degree]...)
	frame.Weights = extended
	return frame, nil
}

func insufficientFitPoints() error {
	return &core.ValueError{Field: "fit points", Reason: "insufficient fit points"}
}

// averagedKnots 插值用节点向量：两端各钳位 degree+1 个，
// 内部节点取相邻 degree 个参数的平均（保证系数矩阵可逆）
func averagedKnots(t []float64, degree int) []float64 {
	n := len(t) - 1
	knots := make([]float64, 0, n+degree+2)
	for i := 0; i <= degree; i++ {
		knots = append(knots, 0)
	}
	for j := 1; j <= n-degree; j++ {
		var sum float64
		for i := j; i < j+degree; i++ {
			sum += t[i]
		}
		knots = append(knots, sum/float64(degree))
	}
	for i := 0; i <= degree; i++ {
		knots = append(knots, 1)
	}
	return knots
}

// approximationKnots 逼近用节点向量：按拟合点参数的分布内插内部节点
func approximationKnots(t []float64, n, p int) []float64 {
	m := len(t) - 1
	knots := make([]float64, 0, n+p+2)
	for i := 0; i <= p; i++ {
		knots = append(knots, 0)
	}
	d := float64(m+1) / float64(n-p+1)
	for j := 1; j <= n-p; j++ {
		pos := float64(j) * d
		i := int(pos)
		alpha := pos - float64(i)
		knots = append(knots, (1-alpha)*t[i-1]+alpha*t[i])
	}
	for i := 0; i <= p; i++ {
		knots = append(knots, 1)
	}
	return knots
}

// openUniformKnots 开放均匀节点向量：0 重复 order 次、内部 1..k、末值重复 order 次
func openUniformKnots(count, degree int) []float64 {
	order := degree + 1
	knots := make([]float64, 0, count+order)
	for i := 0; i < order; i++ {
		knots = append(knots, 0)
	}
	v := 1.0
	for i := 0; i < count-order; i++ {
		knots = append(knots, v)
		v++
	}
	for i := 0; i < order; i++ {
		knots = append(knots, v)
	}
	return knots
}

// basis 计算 B 样条基函数 N(i, p) 在 u 处的取值（Cox-de Boor 递推）
func basis(i, p int, u float64, knots []float64) float64 {
	if p == 0 {
		// 半开区间取值，仅在最末节点处右端取闭，
		// 保证 u 等于参数域右端点时末个基函数取 1
		if knots[i] <= u && u < knots[i+1] {
			return 1
		}
		if u == knots[i+1] && knots[i] < knots[i+1] && knots[i+1] == knots[len(knots)-1] {
			return 1
		}
		return 0
	}

	var left, right float64
	if d := knots[i+p] - knots[i]; d != 0 {
		left = (u - knots[i]) / d * basis(i, p-1, u, knots)
	}
	if d := knots[i+p+1] - knots[i+1]; d != 0 {
		right = (knots[i+p+1] - u) / d * basis(i+1, p-1, u, knots)
	}
	return left + right
}

// solve 列主元高斯消元求解 A·X = B，B 的每个元素是一个三维点。
// A 与 B 会被原地修改
func solve(a [][]float64, b []core.Point) ([]core.Point, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, &core.ValueError{Field: "fit points", Reason: "singular equation system"}
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			if f == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] = b[row].Sub(b[col].Mul(f))
		}
	}

	x := make([]core.Point, n)
	for row := n - 1; row >= 0; row-- {
		p := b[row]
		for k := row + 1; k < n; k++ {
			p = p.Sub(x[k].Mul(a[row][k]))
		}
		x[row] = p.Mul(1 / a[row][row])
	}
	return x, nil
}
