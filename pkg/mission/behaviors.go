package mission

import (
	"time"

	"github.com/teslashibe/go-firebot/internal/log"
	"github.com/teslashibe/go-firebot/pkg/drive"
)

// Detection predicates. None of them mutate mission state; they read sensors
// fresh on every call and record the raw value for the dashboard snapshot.

// detectObstacle reports bumper contact. On contact it immediately stops the
// drive base before returning, so a policy never keeps driving into whatever
// it hit.
func (c *Controller) detectObstacle() (bool, error) {
	touched, err := c.rig.Touching()
	if err != nil {
		return false, err
	}
	if !touched {
		return false, nil
	}
	if err := c.rig.Stop(); err != nil {
		return false, err
	}
	detectionsTotal.WithLabelValues("obstacle").Inc()
	c.publish(Event{Kind: EventDetection, Detail: "obstacle"})
	return true, nil
}

// detectWallOnRight reports whether the lateral range is inside the
// wall-follow band.
func (c *Controller) detectWallOnRight() (bool, error) {
	dist, err := c.rig.DistanceMM()
	if err != nil {
		return false, err
	}
	c.recordDistance(dist)
	return dist < c.cfg.WallFollowMinDistanceMM, nil
}

// detectFlame reports whether ambient light exceeds the flame threshold.
func (c *Controller) detectFlame() (bool, error) {
	intensity, err := c.rig.AmbientLight()
	if err != nil {
		return false, err
	}
	c.recordAmbient(intensity)
	if intensity <= c.cfg.FlameThreshold {
		return false, nil
	}
	detectionsTotal.WithLabelValues("flame").Inc()
	c.publish(Event{Kind: EventDetection, Detail: "flame", Value: intensity})
	return true, nil
}

// detectGoal reports whether the robot is on the goal tile. Exact color
// match, no tolerance.
func (c *Controller) detectGoal() (bool, error) {
	color, err := c.rig.SurfaceColor()
	if err != nil {
		return false, err
	}
	c.recordColor(color)
	if color != c.cfg.GoalColor {
		return false, nil
	}
	detectionsTotal.WithLabelValues("goal").Inc()
	c.publish(Event{Kind: EventDetection, Detail: "goal"})
	return true, nil
}

// scanForFlame sweeps a full circle in ScanTurns increments, checking for a
// flame before each turn. It stops rotating the moment a flame is seen, so a
// flame found at increment n costs exactly n-1 turns.
func (c *Controller) scanForFlame() (bool, error) {
	for i := 0; i < c.cfg.ScanTurns; i++ {
		found, err := c.detectFlame()
		if err != nil {
			return false, err
		}
		if found {
			log.Info("flame detected during scan", "increment", i)
			return true, nil
		}
		if err := c.rig.Turn(c.cfg.ScanTurnDeg); err != nil {
			return false, err
		}
	}
	return false, nil
}

// wander drives open floor. Hitting an obstacle means there is a wall to
// follow: back off, turn away, and hand over to wall following.
func (c *Controller) wander() error {
	obstacle, err := c.detectObstacle()
	if err != nil {
		return err
	}
	if obstacle {
		if err := c.rig.Straight(-c.cfg.WallFollowStepMM); err != nil {
			return err
		}
		if err := c.rig.Turn(-c.cfg.ObstacleTurnDeg); err != nil {
			return err
		}
		c.transition(StateWallFollowing)
		return nil
	}
	return c.rig.Straight(c.cfg.WanderDistanceMM)
}

// wallFollow keeps the wall on the right at the target distance.
// Priority order: obstacle ahead, lost wall (convex corner), then a pure
// proportional correction toward the target distance.
func (c *Controller) wallFollow() error {
	obstacle, err := c.detectObstacle()
	if err != nil {
		return err
	}
	if obstacle {
		if err := c.rig.Straight(-c.cfg.WallFollowStepMM); err != nil {
			return err
		}
		return c.rig.Turn(-c.cfg.ObstacleTurnDeg)
	}

	wall, err := c.detectWallOnRight()
	if err != nil {
		return err
	}
	if !wall {
		// Convex corner: turn toward where the wall went.
		return c.rig.Turn(-c.cfg.ObstacleTurnDeg)
	}

	dist, err := c.rig.DistanceMM()
	if err != nil {
		return err
	}
	c.recordDistance(dist)

	// P controller: correction is linear in the distance error.
	errMM := c.cfg.WallFollowMinDistanceMM - dist
	adjustment := errMM * c.cfg.WallFollowAdjustGain
	if err := c.rig.Turn(adjustment); err != nil {
		return err
	}
	return c.rig.Straight(c.cfg.WallFollowStepMM)
}

// approachStep advances one step toward the flame. The approach is re-entrant:
// one step per tick, so the outer loop keeps control and can cancel between
// steps. Reaching the goal tile transitions to Extinguish without issuing any
// motion.
func (c *Controller) approachStep() error {
	onGoal, err := c.detectGoal()
	if err != nil {
		return err
	}
	if onGoal {
		c.transition(StateExtinguish)
		return nil
	}

	touched, err := c.rig.Touching()
	if err != nil {
		return err
	}
	if touched {
		if err := c.rig.Straight(-c.cfg.WallFollowStepMM); err != nil {
			return err
		}
		return c.rig.Turn(-c.cfg.ObstacleTurnDeg)
	}
	return c.rig.Straight(c.cfg.ApproachStepMM)
}

// extinguish runs the fan over the goal tile, waits out the cooldown, lights
// the hub green, and ends the mission.
func (c *Controller) extinguish() error {
	log.Info("extinguishing fire", "fan_speed", c.cfg.FanSpeed, "fan_run", c.cfg.FanRunTime.String())
	if err := c.rig.RunTimed(c.cfg.FanSpeed, c.cfg.FanRunTime.D()); err != nil {
		return err
	}

	if c.cfg.Cooldown > 0 {
		log.Info("cooling down", "cooldown", c.cfg.Cooldown.String())
		time.Sleep(c.cfg.Cooldown.D())
	}

	// Indicator only; a dead light must not fail the mission.
	if err := c.rig.SetLight(drive.ColorGreen); err != nil {
		log.Warn("status light failed", "error", err)
	}

	c.transition(StateComplete)
	return nil
}

// recordAmbient stores the latest ambient reading for Status().
func (c *Controller) recordAmbient(v float64) {
	c.mu.Lock()
	c.lastAmbient = v
	c.mu.Unlock()
}

// recordDistance stores the latest range reading for Status().
func (c *Controller) recordDistance(v float64) {
	c.mu.Lock()
	c.lastDistance = v
	c.mu.Unlock()
}

// recordColor stores the latest color reading for Status().
func (c *Controller) recordColor(v drive.Color) {
	c.mu.Lock()
	c.lastColor = v
	c.mu.Unlock()
}
