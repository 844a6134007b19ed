package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitosis-ai/mitosis/internal/api"
	"github.com/mitosis-ai/mitosis/internal/config"
	"github.com/mitosis-ai/mitosis/internal/memory"
	"github.com/mitosis-ai/mitosis/internal/monitor"
	"github.com/mitosis-ai/mitosis/internal/report"
	"github.com/mitosis-ai/mitosis/internal/session"
	"github.com/mitosis-ai/mitosis/internal/ui/clipboard"
	"github.com/mitosis-ai/mitosis/internal/ui/layout"
	"github.com/mitosis-ai/mitosis/internal/ui/panels"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
	"github.com/mitosis-ai/mitosis/internal/ws"
)

const (
	panelPlan    = 0
	panelMonitor = 1
	panelMemory  = 2
	numPanels    = 3
)

const wsRetryDelay = 5 * time.Second

type App struct {
	config *config.Config
	ctrl   *session.Controller
	mem    *memory.Manager
	client *api.Client
	wsc    *ws.Client
	log    zerolog.Logger

	width        int
	height       int
	layout       layout.Layout
	focusedPanel int

	planPanel   panels.PlanPanel
	monitorView panels.MonitorView
	memoryPanel panels.MemoryPanel
	statusBar   panels.StatusBar
	chatInput   panels.ChatInput
	helpOverlay *panels.HelpOverlay
	taskModal   *panels.NewTaskModal

	keys     KeyMap
	ready    bool
	chatBusy bool
}

func NewApp(cfg *config.Config, mem *memory.Manager, logger zerolog.Logger) App {
	ctrl := session.New(cfg.InitSteps(), monitor.SequencerCallbacks{
		Log: func(level, message string) {
			logger.Info().Str("level", level).Msg(message)
		},
	})

	mv := panels.NewMonitorView(ctrl.Store(), ctrl.Sequencer())
	mv.SetFocused(true)
	if cfg.UI.ShowPageMeta != nil {
		mv.SetShowMeta(*cfg.UI.ShowPageMeta)
	}
	mv.SetScrollSpeed(cfg.UI.ScrollSpeed)

	return App{
		config:       cfg,
		ctrl:         ctrl,
		mem:          mem,
		client:       api.NewClient(cfg.Backend.BaseURL, logger),
		log:          logger,
		focusedPanel: panelMonitor,
		planPanel:    panels.NewPlanPanel(),
		monitorView:  mv,
		memoryPanel:  panels.NewMemoryPanel(mem),
		statusBar:    panels.NewStatusBar(ctrl.Store(), mem),
		chatInput:    panels.NewChatInput(),
		keys:         DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		listenForChanges(a.ctrl.Store().Changes()),
		a.dialWS(),
		a.planPanel.Init(),
		a.monitorView.Init(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		a.taskModal = nil
		return a, nil

	case MonitorUpdatedMsg:
		var cmd tea.Cmd
		a.monitorView, cmd = a.monitorView.Update(msg)
		return a, tea.Batch(cmd, listenForChanges(a.ctrl.Store().Changes()))

	case BootTickMsg:
		if msg.TaskID != a.ctrl.TaskID() {
			return a, nil
		}
		a.ctrl.Advance(time.Now())
		if cmd := a.bootTick(); cmd != nil {
			return a, cmd
		}
		return a, nil

	case SubmitTaskMsg:
		a.taskModal = nil
		return a, a.startTask(msg.Title)

	case PlanGeneratedMsg:
		if msg.TaskID != a.ctrl.TaskID() {
			return a, nil
		}
		fetch := a.ctrl.SetPlan(msg.TaskID, msg.Resp.Plan)
		a.planPanel.SetSteps(a.ctrl.Plan())
		if msg.Resp.EnhancedTitle != "" {
			a.statusBar.SetTask(msg.Resp.EnhancedTitle)
		}
		if fetch {
			return a, a.fetchFinalReport(msg.TaskID)
		}
		return a, nil

	case PlanFailedMsg:
		if msg.TaskID != a.ctrl.TaskID() {
			return a, nil
		}
		a.planPanel.SetSteps(nil)
		a.log.Error().Err(msg.Err).Msg("generate plan")
		return a, a.flash("No se pudo generar el plan", panels.FlashError)

	case SubmitChatMsg:
		return a.handleChatSubmit(msg.Message)

	case ChatRespMsg:
		a.chatBusy = false
		a.chatInput.SetBusy(false)
		if msg.TaskID != a.ctrl.TaskID() {
			return a, nil
		}
		return a, a.applyChatResponse(msg.TaskID, msg.Resp)

	case ChatFailedMsg:
		a.chatBusy = false
		a.chatInput.SetBusy(false)
		a.log.Error().Err(msg.Err).Msg("chat")
		return a, a.flash("Error al contactar al agente", panels.FlashError)

	case FinalReportMsg:
		a.ctrl.ReportDelivered(msg.TaskID, msg.Content)
		return a, a.flash("Informe final recibido", panels.FlashSuccess)

	case FinalReportFailedMsg:
		a.log.Error().Err(msg.Err).Msg("final report")
		a.ctrl.ReportFailed(msg.TaskID)
		return a, a.flash("Informe final no disponible, usando resumen local", panels.FlashWarning)

	case FilesUploadedMsg:
		for _, f := range msg.Resp.Files {
			_, err := a.mem.Add(memory.File{
				Name: f.Name,
				Type: memory.TypeUploadedFile,
				Meta: memory.Meta{Size: int(f.Size), Source: "upload"},
			})
			if err == memory.ErrDuplicate {
				a.log.Debug().Str("name", f.Name).Msg("upload already in memory")
			}
		}
		return a, a.flash(fmt.Sprintf("%d archivo(s) subidos", len(msg.Resp.Files)), panels.FlashSuccess)

	case UploadFailedMsg:
		a.log.Error().Err(msg.Err).Msg("upload")
		return a, a.flash("Error al subir archivos", panels.FlashError)

	case ExportReportMsg:
		return a, a.exportReport()

	case ReportExportedMsg:
		return a, a.flash("Informe exportado: "+msg.Path, panels.FlashSuccess)

	case ExportFailedMsg:
		a.log.Error().Err(msg.Err).Msg("export report")
		return a, a.flash("No se pudo exportar el informe", panels.FlashError)

	case YankMsg:
		if err := clipboard.Write(msg.Text); err != nil {
			return a, a.flash("No se pudo copiar", panels.FlashError)
		}
		return a, a.flash("Copiado al portapapeles", panels.FlashSuccess)

	case WSConnectedMsg:
		a.wsc = msg.Client
		a.statusBar.SetWSConnected(true)
		cmds := []tea.Cmd{listenForEvents(a.wsc.Events())}
		if a.ctrl.TaskID() != "" {
			if err := a.wsc.JoinMonitoring(a.ctrl.TaskID()); err != nil {
				a.log.Warn().Err(err).Msg("join monitoring")
			}
		}
		return a, tea.Batch(cmds...)

	case WSDialFailedMsg:
		a.log.Warn().Err(msg.Err).Msg("websocket dial")
		a.statusBar.SetWSConnected(false)
		return a, a.retryWS()

	case WSEventMsg:
		return a.handleWSEvent(msg.Event)

	case WSClosedMsg:
		a.wsc = nil
		a.statusBar.SetWSConnected(false)
		return a, a.retryWS()

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case panels.GTimerExpiredMsg:
		var cmd tea.Cmd
		a.monitorView, cmd = a.monitorView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Spinner ticks and other component messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.planPanel, cmd = a.planPanel.Update(msg)
	cmds = append(cmds, cmd)
	a.monitorView, cmd = a.monitorView.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.taskModal != nil {
		var cmd tea.Cmd
		a.taskModal, cmd = a.taskModal.Update(msg)
		return a, cmd
	}
	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	if a.chatInput.Focused() {
		switch msg.String() {
		case "esc":
			a.chatInput.SetFocused(false)
			return a, nil
		case "ctrl+c":
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.chatInput, cmd = a.chatInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "tab":
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case "?":
		if a.helpOverlay == nil {
			a.helpOverlay = panels.NewHelpOverlay()
		} else {
			a.helpOverlay = nil
		}
		return a, nil
	case "n":
		a.taskModal = panels.NewNewTaskModal(a.width, a.height)
		return a, a.taskModal.Init()
	case "i":
		return a, a.chatInput.SetFocused(true)
	}

	return a.routeKey(msg)
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focusedPanel {
	case panelPlan:
		a.planPanel, cmd = a.planPanel.Update(msg)
	case panelMonitor:
		a.monitorView, cmd = a.monitorView.Update(msg)
	case panelMemory:
		a.memoryPanel, cmd = a.memoryPanel.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Cargando...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, a.planPanel.View(), a.monitorView.View())
	fullLayout := lipgloss.JoinVertical(lipgloss.Left,
		topRow, a.memoryPanel.View(), a.chatInput.View(), a.statusBar.View())

	if a.taskModal != nil {
		return a.overlay(a.taskModal.View())
	}
	if a.helpOverlay != nil {
		return a.overlay(a.helpOverlay.View())
	}

	return fullLayout
}

func (a App) overlay(modal string) string {
	return lipgloss.Place(a.width, a.height,
		lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(styles.TextDim),
	)
}

// startTask activates a fresh task: hard monitor reset, boot sequence,
// plan generation, and a monitoring-room join.
func (a *App) startTask(title string) tea.Cmd {
	taskID := uuid.NewString()
	now := time.Now()

	a.ctrl.SwitchTask(taskID, title, now)
	a.planPanel.SetGenerating(now)
	a.statusBar.SetTask(title)

	if a.wsc != nil {
		if err := a.wsc.JoinMonitoring(taskID); err != nil {
			a.log.Warn().Err(err).Msg("join monitoring")
		}
	}

	cmds := []tea.Cmd{a.generatePlan(taskID, title)}
	if tick := a.bootTick(); tick != nil {
		cmds = append(cmds, tick)
	}
	return tea.Batch(cmds...)
}

func (a App) handleChatSubmit(message string) (tea.Model, tea.Cmd) {
	if rest, ok := strings.CutPrefix(message, "/upload "); ok {
		paths := strings.Fields(rest)
		if len(paths) == 0 {
			return a, nil
		}
		return a, a.uploadFiles(paths)
	}

	if a.ctrl.TaskID() == "" {
		return a, a.flash("Crea una tarea primero (n)", panels.FlashWarning)
	}

	a.chatBusy = true
	a.chatInput.SetBusy(true)
	return a, a.sendChat(a.ctrl.TaskID(), message)
}

func (a *App) applyChatResponse(taskID string, resp *api.ChatResponse) tea.Cmd {
	for _, tr := range resp.ToolResults {
		a.ctrl.HandleToolResult(taskID, tr)
	}

	for _, name := range resp.CreatedFiles {
		_, err := a.mem.Add(memory.File{
			Name: name,
			Type: memory.TypeAgentFile,
			Meta: memory.Meta{Source: "agent", Summary: "Archivo creado por el agente"},
		})
		if err == memory.ErrDuplicate {
			a.log.Debug().Str("name", name).Msg("created file already in memory")
		}
	}

	var fetch bool
	if len(resp.Plan) > 0 {
		fetch = a.ctrl.SetPlan(taskID, resp.Plan)
		a.planPanel.SetSteps(a.ctrl.Plan())
	}

	var cmds []tea.Cmd
	if resp.Response != "" {
		cmds = append(cmds, a.flash(resp.Response, panels.FlashInfo))
	}
	if fetch {
		cmds = append(cmds, a.fetchFinalReport(taskID))
	}
	return tea.Batch(cmds...)
}

func (a App) handleWSEvent(ev ws.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{listenForEvents(a.wsc.Events())}

	switch ev.Type {
	case ws.EventConnected:
		a.log.Info().Str("room", ev.RoomID).Msg("websocket connected")

	case ws.EventMonitoringJoined:
		a.log.Debug().Msg("monitoring room joined")

	case ws.EventNewMonitorPage:
		taskID := a.ctrl.TaskID()
		if taskID != "" {
			a.ctrl.HandlePage(taskID, ev.Page)
			if fetch := a.ctrl.ObservePlan(taskID); fetch {
				cmds = append(cmds, a.fetchFinalReport(taskID))
			}
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) exportReport() tea.Cmd {
	p, ok := a.ctrl.Store().Get(monitor.PageIDFinalReport)
	if !ok {
		return a.flash("No hay informe que exportar", panels.FlashWarning)
	}
	dir := a.config.Reports.Dir
	title := a.ctrl.TaskTitle()
	content := p.Content
	return func() tea.Msg {
		path, err := report.Export(dir, title, content)
		if err != nil {
			return ExportFailedMsg{Err: err}
		}
		return ReportExportedMsg{Path: path}
	}
}

func (a *App) propagateSizes() {
	l := a.layout
	a.planPanel.SetSize(l.PlanWidth, l.PlanHeight)
	a.monitorView.SetSize(l.MonitorWidth, l.MonitorHeight)
	a.memoryPanel.SetSize(l.MemoryWidth, l.MemoryHeight)
	a.chatInput.SetSize(l.ChatWidth)
	a.statusBar.SetSize(l.StatusBarWidth)
	if a.taskModal != nil {
		a.taskModal.SetSize(a.width, a.height)
	}
}

func (a *App) updateFocusState() {
	a.planPanel.SetFocused(a.focusedPanel == panelPlan)
	a.monitorView.SetFocused(a.focusedPanel == panelMonitor)
	a.memoryPanel.SetFocused(a.focusedPanel == panelMemory)
}

func (a *App) flash(msg string, level panels.FlashLevel) tea.Cmd {
	a.statusBar.SetFlashWithLevel(msg, level)
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

// bootTick schedules the next sequencer advance, or nothing once online.
func (a *App) bootTick() tea.Cmd {
	deadline, ok := a.ctrl.Sequencer().NextDeadline()
	if !ok {
		return nil
	}
	taskID := a.ctrl.TaskID()
	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return BootTickMsg{TaskID: taskID}
	})
}

// Commands

func (a *App) generatePlan(taskID, title string) tea.Cmd {
	client, timeout := a.client, a.config.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.GeneratePlan(ctx, taskID, title)
		if err != nil {
			return PlanFailedMsg{TaskID: taskID, Err: err}
		}
		return PlanGeneratedMsg{TaskID: taskID, Resp: resp}
	}
}

func (a *App) sendChat(taskID, message string) tea.Cmd {
	client, timeout := a.client, a.config.Timeout()
	req := api.ChatRequest{
		TaskID:  taskID,
		Message: message,
		Context: a.activeContext(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.SendMessage(ctx, req)
		if err != nil {
			return ChatFailedMsg{TaskID: taskID, Err: err}
		}
		return ChatRespMsg{TaskID: taskID, Resp: resp}
	}
}

func (a *App) fetchFinalReport(taskID string) tea.Cmd {
	client, timeout := a.client, a.config.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		content, err := client.FinalReport(ctx, taskID)
		if err != nil {
			return FinalReportFailedMsg{TaskID: taskID, Err: err}
		}
		return FinalReportMsg{TaskID: taskID, Content: content}
	}
}

func (a *App) uploadFiles(paths []string) tea.Cmd {
	client, timeout := a.client, a.config.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.UploadFiles(ctx, paths)
		if err != nil {
			return UploadFailedMsg{Err: err}
		}
		return FilesUploadedMsg{Paths: paths, Resp: resp}
	}
}

// activeContext maps the active memory files to chat context entries,
// highest priority first.
func (a *App) activeContext() []api.ContextFile {
	files := a.mem.ActiveContext()
	out := make([]api.ContextFile, 0, len(files))
	for _, f := range files {
		out = append(out, api.ContextFile{Name: f.Name, Content: f.Content})
	}
	return out
}

func (a *App) dialWS() tea.Cmd {
	url, origin, logger := a.config.Backend.WSURL, a.config.Backend.BaseURL, a.log
	return func() tea.Msg {
		client, err := ws.Dial(url, origin, logger)
		if err != nil {
			return WSDialFailedMsg{Err: err}
		}
		return WSConnectedMsg{Client: client}
	}
}

func (a *App) retryWS() tea.Cmd {
	dial := a.dialWS()
	return tea.Tick(wsRetryDelay, func(time.Time) tea.Msg {
		return dial()
	})
}

func listenForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return MonitorUpdatedMsg{}
	}
}

func listenForEvents(ch <-chan ws.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return WSClosedMsg{}
		}
		return WSEventMsg{Event: ev}
	}
}
